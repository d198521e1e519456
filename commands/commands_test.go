package commands

import (
	"errors"
	"fmt"
	"testing"
)

// fakeCommand records its lifecycle so tests can assert dispatch ordering
type fakeCommand struct {
	parseErr   error
	executeErr error
	parsedArgs []string
	parsed     bool
	executed   bool
}

func (f *fakeCommand) Parse(args []string) error {
	f.parsed = true
	f.parsedArgs = args
	return f.parseErr
}

func (f *fakeCommand) Execute() error {
	f.executed = true
	return f.executeErr
}

// register wires a fake command under a unique name for one test
func register(t *testing.T, name string, fake *fakeCommand) {
	t.Helper()
	Register(name, func() CommandHandler { return fake })
}

func TestDispatchWithoutCommand(t *testing.T) {
	if err := Dispatch([]string{"click"}); err != nil {
		t.Errorf("Expected no error for a bare invocation, got %v", err)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	err := Dispatch([]string{"click", "Frobnicate"})
	if err == nil {
		t.Fatal("Expected an error for an unknown command, got none")
	}
	var notFound *CommandNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected CommandNotFoundError, got %v", err)
	}
	if notFound.Name != "Frobnicate" {
		t.Errorf("Expected the original-case token 'Frobnicate', got %q", notFound.Name)
	}
}

func TestDispatchMatchesCaseInsensitively(t *testing.T) {
	fake := &fakeCommand{}
	register(t, "shout", fake)
	if err := Dispatch([]string{"click", "SHOUT", "one", "two"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !fake.parsed || !fake.executed {
		t.Errorf("Expected parse and execute to run, got parsed=%v executed=%v", fake.parsed, fake.executed)
	}
	if len(fake.parsedArgs) != 2 || fake.parsedArgs[0] != "one" || fake.parsedArgs[1] != "two" {
		t.Errorf("Expected remaining args [one two], got %v", fake.parsedArgs)
	}
}

func TestDispatchParseFailureSkipsExecute(t *testing.T) {
	parseErr := fmt.Errorf("bad arguments")
	fake := &fakeCommand{parseErr: parseErr}
	register(t, "brittle", fake)
	err := Dispatch([]string{"click", "brittle"})
	if !errors.Is(err, parseErr) {
		t.Fatalf("Expected the parse error to propagate, got %v", err)
	}
	if fake.executed {
		t.Error("Expected execute to be skipped after a parse failure")
	}
}

func TestDispatchExecuteFailureStillSucceeds(t *testing.T) {
	fake := &fakeCommand{executeErr: fmt.Errorf("resolution failed")}
	register(t, "doomed", fake)
	if err := Dispatch([]string{"click", "doomed"}); err != nil {
		t.Errorf("Expected execute failures to be non-fatal, got %v", err)
	}
	if !fake.executed {
		t.Error("Expected execute to run")
	}
}

func TestDispatchInstallRequiresSpecifier(t *testing.T) {
	if err := Dispatch([]string{"click", "install"}); err == nil {
		t.Error("Expected a parse error for install without specifiers, got none")
	}
}
