package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for CompileError, usable with errors.Is.
var (
	ErrUnsupportedType        = errors.New("unsupported schema type")
	ErrMissingListElementType = errors.New("list element type missing")
	ErrInvalidListDefault     = errors.New("list default does not match its schema")
)

// CompileError reports a malformed schema description
type CompileError struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Path locates the offending entry in the schema description.
	Path []string

	// Raw is the offending value, rendered as JSON.
	Raw string

	// Cause is set for ErrInvalidListDefault.
	Cause error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	var msg string
	switch e.Kind {
	case ErrUnsupportedType:
		msg = fmt.Sprintf("Not allowed type %s", e.Raw)
	case ErrMissingListElementType:
		msg = fmt.Sprintf("List type has to be specified for %s", e.Raw)
	case ErrInvalidListDefault:
		msg = fmt.Sprintf("List default %s is invalid: %v", e.Raw, e.Cause)
	default:
		msg = fmt.Sprintf("%v: %s", e.Kind, e.Raw)
	}
	return fmt.Sprintf("schema %s: %s", formatPath(e.Path), msg)
}

// Is matches the sentinel kind
func (e *CompileError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying validation failure, if any
func (e *CompileError) Unwrap() error {
	return e.Cause
}

// ValidationError reports the first place a value departs from its schema
type ValidationError struct {
	// Path is the list of keys and indices from the root.
	Path []string

	// Reason completes the sentence "Value [path] ...".
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("Value %s %s", formatPath(e.Path), e.Reason)
}

// formatPath renders segments as [a][b][0]
func formatPath(path []string) string {
	return "[" + strings.Join(path, "][") + "]"
}
