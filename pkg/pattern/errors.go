package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned for malformed canonical patterns.
	ErrSyntax = errors.New("pattern: syntax error")

	// ErrNotEmbeddable is returned when no restricted form with the same
	// language exists. It is a catalog-authoring error.
	ErrNotEmbeddable = errors.New("pattern: no equivalent restricted form")
)

// CompileError ties a compile failure to the catalog field that caused it.
type CompileError struct {
	Field string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern: field %q: %v", e.Field, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// MismatchError reports an input the two forms disagree on.
type MismatchError struct {
	Input      string
	Full       bool
	Restricted bool
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("pattern: forms disagree on %q (full=%t, restricted=%t)", e.Input, e.Full, e.Restricted)
}

func (e *MismatchError) Unwrap() error { return ErrNotEmbeddable }
