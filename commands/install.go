package commands

import (
	"fmt"

	"github.com/StarNumber12046/click/types"
	"github.com/StarNumber12046/click/versions"
)

// Registry supplies the full version listing a registry has published for a
// package. It is consulted only when a constraint cannot be resolved from the
// specifier alone.
type Registry interface {
	PackageInfo(name string) (*types.PackageInfo, error)
}

// Store receives resolved (name, version) pairs for retrieval and
// installation.
type Store interface {
	Add(name, version string) error
}

// Installer implements the install command: it parses package specifiers and
// resolves each one to a concrete version before handing it to the store.
type Installer struct {
	registry Registry
	store    Store
	requests []versions.PackageSpecifier
}

// NewInstaller returns an install command wired to the given collaborators.
// A nil store falls back to printing resolved versions on stdout.
func NewInstaller(registry Registry, store Store) *Installer {
	if store == nil {
		store = printStore{}
	}
	return &Installer{registry: registry, store: store}
}

// Parse reads every remaining argument as a package specifier.
func (i *Installer) Parse(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one package specifier required (e.g., click install react@^18.2.0)")
	}
	for _, arg := range args {
		specifier, err := versions.ParseSpecifier(arg)
		if err != nil {
			return err
		}
		i.requests = append(i.requests, specifier)
	}
	return nil
}

// Execute resolves every requested package and hands the results to the
// store.
func (i *Installer) Execute() error {
	for _, request := range i.requests {
		resolved, err := i.resolve(request)
		if err != nil {
			return err
		}
		if err := i.store.Add(request.Name, resolved); err != nil {
			return err
		}
	}
	return nil
}

// resolve runs the two-step resolution protocol for a single package. The
// registry is queried only when the constraint cannot be resolved locally.
func (i *Installer) resolve(request versions.PackageSpecifier) (string, error) {
	if resolved, ok := versions.ResolveFull(request.Constraint); ok {
		return resolved, nil
	}
	if i.registry == nil {
		return "", fmt.Errorf("no registry available to resolve '%s'", request.Name)
	}
	info, err := i.registry.PackageInfo(request.Name)
	if err != nil {
		return "", fmt.Errorf("failed to fetch versions for '%s': %v", request.Name, err)
	}
	resolved, err := versions.ResolvePartial(request.Constraint, info.Versions)
	if err != nil {
		return "", fmt.Errorf("no installable version of '%s': %w", request.Name, err)
	}
	return resolved, nil
}

// printStore reports resolved versions on stdout in place of a real
// installation backend.
type printStore struct{}

func (printStore) Add(name, version string) error {
	fmt.Printf("Installing '%s' version %s\n", name, version)
	return nil
}
