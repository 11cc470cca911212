package cli

import "fmt"

// ExitCodeIncomplete is returned when a selection walk stopped on a fetch failure.
const ExitCodeIncomplete = 2

// ExitError carries a process exit code out of a command.
type ExitError struct {
	ExitCode int
	Reason   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", e.Reason, e.ExitCode)
}
