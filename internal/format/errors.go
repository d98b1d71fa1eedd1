package format

import (
	"errors"
	"fmt"
)

// Errors returned by format adapters.
var (
	// ErrUnsupportedFormat matches every *UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrParse matches every *ParseError.
	ErrParse = errors.New("parse error")
)

// UnsupportedFormatError reports content that matches no known grammar,
// or a format name that has no reader or writer.
type UnsupportedFormatError struct {
	// Filename is the imported file, if any.
	Filename string
	// Name is the requested format name, if any.
	Name string
	// Reason adds detail, such as "read only".
	Reason string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	var msg string
	switch {
	case e.Filename != "":
		msg = fmt.Sprintf("unsupported format: %s", e.Filename)
	case e.Name != "":
		msg = fmt.Sprintf("unsupported format %q", e.Name)
	default:
		msg = "unsupported format"
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// Is makes errors.Is(err, ErrUnsupportedFormat) succeed.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ParseError reports a file that matches a format but is structurally
// malformed.
type ParseError struct {
	// Format is the grammar being parsed.
	Format Kind
	// Line is the 1-based line number, or 0 if unknown.
	Line int
	// Element locates the failure inside structured formats, e.g. an XML
	// element and its id.
	Element string
	// Message describes the failure.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s parse error", e.Format)
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Element != "" {
		msg += fmt.Sprintf(" in %s", e.Element)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) succeed.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Errorf builds a ParseError for a line.
func Errorf(kind Kind, line int, format string, args ...any) *ParseError {
	return &ParseError{Format: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}
