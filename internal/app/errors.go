package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the session should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the session is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without a terminal backend.
	ErrNoBackend = errors.New("no terminal backend")

	// ErrNoFilePath indicates the document has nowhere to be saved.
	ErrNoFilePath = errors.New("document has no file path")

	// ErrUnsavedChanges indicates a quit was refused because of unsaved
	// annotations.
	ErrUnsavedChanges = errors.New("unsaved changes")
)

// FileError reports a failed document read or write.
type FileError struct {
	Op   string // "open", "import" or "save"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
