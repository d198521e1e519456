package commands

import (
	"fmt"
	"strings"
)

// CommandHandler is the capability every CLI command implements. Parse is
// always called before Execute, and a parse failure prevents execution.
type CommandHandler interface {
	Parse(args []string) error
	Execute() error
}

// command pairs a registered name with a constructor for its handler.
type command struct {
	name string
	new  func() CommandHandler
}

// registry lists every known command in registration order. Adding a command
// means implementing CommandHandler and registering a constructor here.
var registry = []command{
	{name: "install", new: func() CommandHandler { return NewInstaller(nil, nil) }},
}

// Register adds a command to the dispatch registry. The first matching name
// in registration order wins, so later registrations cannot shadow earlier
// ones.
func Register(name string, constructor func() CommandHandler) {
	registry = append(registry, command{name: name, new: constructor})
}

// Dispatch reads the command name from the process argument list and runs the
// matching handler through its parse and execute phases. A parse error aborts
// the run and is returned to the caller; an execute error is printed as a
// diagnostic and Dispatch still succeeds.
func Dispatch(argv []string) error {
	if len(argv) < 2 {
		// TODO: replace this stub once the help menu exists.
		fmt.Println("No help menu implemented yet.")
		return nil
	}
	name, rest := argv[1], argv[2:]
	handler := lookup(name)
	if handler == nil {
		return &CommandNotFoundError{Name: name}
	}
	if err := handler.Parse(rest); err != nil {
		return err
	}
	if err := handler.Execute(); err != nil {
		fmt.Printf("Command error: %v\n", err)
	}
	return nil
}

// lookup matches a command name case-insensitively against the registry and
// constructs its handler.
func lookup(name string) CommandHandler {
	for _, entry := range registry {
		if strings.EqualFold(entry.name, name) {
			return entry.new()
		}
	}
	return nil
}
