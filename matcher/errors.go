package matcher

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when no index has been published yet.
	// Fatal to the call; the caller must build an index first.
	ErrNotInitialized = errors.New("candidate index not initialized")

	// ErrNotFound is returned when a candidate ID is not in the index.
	ErrNotFound = errors.New("candidate not found")
)

// ValidationError indicates a request rejected before scoring.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ValidationError struct {
	Field string
	Value any
	cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.cause }
