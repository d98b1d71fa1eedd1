package dispatcher

import (
	"errors"
	"fmt"
)

// Dispatcher errors.
var (
	// ErrUnknownAction matches every *UnknownActionError.
	ErrUnknownAction = errors.New("dispatcher: unknown action")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction indicates the action has no name.
	ErrInvalidAction = errors.New("dispatcher: invalid action")
)

// UnknownActionError reports an action no handler accepts.
type UnknownActionError struct {
	Action string
}

// Error implements the error interface.
func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("dispatcher: no handler for action %q", e.Action)
}

// Is makes errors.Is(err, ErrUnknownAction) succeed.
func (e *UnknownActionError) Is(target error) bool {
	return target == ErrUnknownAction
}
