package annotation

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("invalid annotation")

	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("annotation not found")
)

// ValidationError rejects a malformed mutation. The store is left unchanged.
type ValidationError struct {
	// Field is the offending field ("start", "end", "tier", "type", "text").
	Field string
	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid annotation: " + e.Message
	}
	return fmt.Sprintf("invalid annotation %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an operation on an unknown annotation id.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("annotation %q not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
