package chatward

import (
	"errors"
	"fmt"
)

// Sentinel errors for session and manager operations.
var (
	// ErrPermissionDenied indicates a command that requires admin
	// rights was issued by a non-admin.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrManagerClosed indicates the manager has been closed.
	ErrManagerClosed = errors.New("manager is closed")

	// ErrNilMessage indicates HandleMessage was called with a nil message.
	ErrNilMessage = errors.New("message cannot be nil")
)

// InvalidCommandError indicates a message that looked like a command
// but names no known command.
type InvalidCommandError struct {
	Command string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command %q", e.Command)
}

// InvalidArgumentsError indicates a known command invoked with the
// wrong argument arity.
type InvalidArgumentsError struct {
	Command      string
	WantArgument bool
}

func (e *InvalidArgumentsError) Error() string {
	if e.WantArgument {
		return fmt.Sprintf("command %q expected an argument", e.Command)
	}
	return fmt.Sprintf("command %q was not expecting an argument", e.Command)
}
