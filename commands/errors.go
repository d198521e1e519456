package commands

import "fmt"

// CommandNotFoundError reports a command name with no registered handler. The
// name keeps the exact case the user typed.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command '%s' not found", e.Name)
}
