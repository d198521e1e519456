package versions

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/StarNumber12046/click/types"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion is returned when no published version of a package
// satisfies the requested constraint.
var ErrInvalidVersion = errors.New("invalid version")

// InvalidNotationError reports a version requirement that could not be parsed.
type InvalidNotationError struct {
	Raw string
	Err error
}

func (e *InvalidNotationError) Error() string {
	return fmt.Sprintf("invalid version notation '%s': %v", e.Raw, e.Err)
}

func (e *InvalidNotationError) Unwrap() error { return e.Err }

// Op identifies the comparison operator of a version comparator.
type Op int

const (
	OpExact Op = iota
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
	OpTilde
	OpCaret
	OpWildcard
)

// Comparator is a single operator plus a (possibly partial) version triple.
// A bare requirement such as "1.2.3" carries the caret operator, and a
// wildcard requirement such as "1.*" leaves the wildcarded components nil.
type Comparator struct {
	Op    Op
	Major uint64
	Minor *uint64
	Patch *uint64

	matcher *semver.Constraints
}

// PackageSpecifier names a package and the constraint the user asked for.
// A nil Constraint means no constraint was given, or the literal "latest".
type PackageSpecifier struct {
	Name       string
	Constraint *Comparator
}

// ParseSpecifier splits a specifier such as "react@^18.2.0" on the first '@'
// and parses the requirement half. "react" and "react@latest" both yield a
// nil constraint.
func ParseSpecifier(details string) (PackageSpecifier, error) {
	name, raw, found := strings.Cut(details, "@")
	if name == "" {
		return PackageSpecifier{}, fmt.Errorf("package name cannot be empty in '%s'", details)
	}
	if !found || raw == "latest" {
		return PackageSpecifier{Name: name}, nil
	}
	comparator, err := ParseComparator(raw)
	if err != nil {
		return PackageSpecifier{}, err
	}
	return PackageSpecifier{Name: name, Constraint: comparator}, nil
}

// ParseComparator parses a version requirement and retains only its first
// comparator. Later comparators in a compound range such as ">=1.2.0, <2.0.0"
// are discarded.
func ParseComparator(raw string) (*Comparator, error) {
	token := firstToken(raw)
	if token == "" {
		return nil, &InvalidNotationError{Raw: raw, Err: fmt.Errorf("empty version requirement")}
	}
	comparator, err := parseToken(token)
	if err != nil {
		return nil, &InvalidNotationError{Raw: raw, Err: err}
	}
	matcher, err := semver.NewConstraint(comparator.constraintString())
	if err != nil {
		return nil, &InvalidNotationError{Raw: raw, Err: err}
	}
	comparator.matcher = matcher
	return comparator, nil
}

// firstToken returns the first comparator token of a range expression, with
// commas and whitespace as separators.
func firstToken(raw string) string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// parseToken parses one comparator token into its operator and triple.
func parseToken(token string) (*Comparator, error) {
	op, rest, explicit := splitOp(token)
	if rest == "" {
		return nil, fmt.Errorf("missing version after operator in '%s'", token)
	}
	parts := strings.Split(rest, ".")
	if len(parts) > 3 {
		return nil, fmt.Errorf("too many version components in '%s'", rest)
	}
	if isWildcardPart(parts[0]) {
		// A bare "*" has no comparator to retain.
		return nil, fmt.Errorf("missing version comparator in '%s'", token)
	}
	major, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid major version '%s'", parts[0])
	}
	comparator := &Comparator{Op: op, Major: major}
	if len(parts) > 1 {
		if isWildcardPart(parts[1]) {
			if explicit {
				return nil, fmt.Errorf("wildcard cannot follow an operator in '%s'", token)
			}
			comparator.Op = OpWildcard
			return comparator, nil
		}
		minor, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minor version '%s'", parts[1])
		}
		comparator.Minor = &minor
	}
	if len(parts) > 2 {
		if isWildcardPart(parts[2]) {
			if explicit {
				return nil, fmt.Errorf("wildcard cannot follow an operator in '%s'", token)
			}
			comparator.Op = OpWildcard
			return comparator, nil
		}
		patch, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid patch version '%s'", parts[2])
		}
		comparator.Patch = &patch
	}
	return comparator, nil
}

// splitOp strips a leading operator from a comparator token. Tokens without
// an explicit operator default to caret.
func splitOp(token string) (op Op, rest string, explicit bool) {
	prefixes := []struct {
		text string
		op   Op
	}{
		{">=", OpGreaterEq},
		{"<=", OpLessEq},
		{">", OpGreater},
		{"<", OpLess},
		{"=", OpExact},
		{"~", OpTilde},
		{"^", OpCaret},
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(token, prefix.text) {
			return prefix.op, token[len(prefix.text):], true
		}
	}
	return OpCaret, token, false
}

// isWildcardPart reports whether a version component is a wildcard.
func isWildcardPart(part string) bool {
	return part == "*" || part == "x" || part == "X"
}

// ResolveFull resolves a constraint without any registry data. It returns
// false when resolution needs the full version listing: a comparator missing
// its minor or patch, or a strict-less bound that needs the ordered listing
// to find the nearest version below it.
func ResolveFull(comparator *Comparator) (string, bool) {
	if comparator == nil {
		return "latest", true
	}
	if comparator.Minor == nil || comparator.Patch == nil {
		return "", false
	}
	switch comparator.Op {
	case OpGreater, OpGreaterEq, OpWildcard:
		return "latest", true
	case OpExact, OpLessEq, OpTilde, OpCaret:
		return versionString(comparator.Major, *comparator.Minor, *comparator.Patch), true
	}
	return "", false
}

// ResolvePartial resolves a constraint against the full version listing of a
// package. It should only be called when ResolveFull returned no answer.
func ResolvePartial(comparator *Comparator, available map[string]types.VersionData) (string, error) {
	ordered := make([]string, 0, len(available))
	for version := range available {
		ordered = append(ordered, version)
	}
	// Raw string order, not semver order. Correct for plain x.y.z listings
	// with single-digit components; degrades on prerelease suffixes and
	// multi-digit boundaries.
	sort.Strings(ordered)

	if comparator.Op == OpLess && comparator.Minor != nil && comparator.Patch != nil {
		target := versionString(comparator.Major, *comparator.Minor, *comparator.Patch)
		position := -1
		for index, version := range ordered {
			if version == target {
				position = index
				break
			}
		}
		if position == -1 {
			return "", fmt.Errorf("version '%s' not published: %w", target, ErrInvalidVersion)
		}
		if position == 0 {
			return "", fmt.Errorf("no version smaller than '%s' available: %w", target, ErrInvalidVersion)
		}
		return ordered[position-1], nil
	}

	// Scan newest-first so the latest compatible version wins.
	for index := len(ordered) - 1; index >= 0; index-- {
		version, err := semver.NewVersion(ordered[index])
		if err != nil {
			// A malformed listing entry counts as 0.0.0 so it can never
			// satisfy a positive lower bound, and never aborts resolution.
			version = emptyVersion
		}
		if comparator.matches(version) {
			return ordered[index], nil
		}
	}
	return "", fmt.Errorf("no published version satisfies the constraint: %w", ErrInvalidVersion)
}

var emptyVersion = semver.New(0, 0, 0, "", "")

// matches reports whether a concrete version satisfies the comparator.
func (c *Comparator) matches(version *semver.Version) bool {
	if c.matcher == nil {
		matcher, err := semver.NewConstraint(c.constraintString())
		if err != nil {
			return false
		}
		c.matcher = matcher
	}
	return c.matcher.Check(version)
}

// constraintString renders the comparator in the notation understood by the
// Masterminds semver constraint parser.
func (c *Comparator) constraintString() string {
	version := strconv.FormatUint(c.Major, 10)
	if c.Minor != nil {
		version += "." + strconv.FormatUint(*c.Minor, 10)
		if c.Patch != nil {
			version += "." + strconv.FormatUint(*c.Patch, 10)
		}
	}
	switch c.Op {
	case OpExact:
		return "=" + version
	case OpGreater:
		return ">" + version
	case OpGreaterEq:
		return ">=" + version
	case OpLess:
		return "<" + version
	case OpLessEq:
		return "<=" + version
	case OpTilde:
		return "~" + version
	case OpCaret:
		return "^" + version
	case OpWildcard:
		if c.Patch == nil {
			version += ".*"
		}
		return version
	}
	return version
}

// versionString formats a full triple as "major.minor.patch".
func versionString(major, minor, patch uint64) string {
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}
