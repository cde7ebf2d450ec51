package navigator

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a desynchronization between cursor, value and schema.
// It indicates a bug, not an operator mistake.
var ErrInvariant = errors.New("navigator invariant violated")

// InvariantError reports where the cursor stopped making sense
type InvariantError struct {
	Path   Path
	Detail string
}

// Error implements the error interface
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v at %s: %s", ErrInvariant, e.Path, e.Detail)
}

// Unwrap returns ErrInvariant
func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func invariant(path Path, format string, args ...any) error {
	return &InvariantError{Path: path, Detail: fmt.Sprintf(format, args...)}
}
