package stellarrec

import (
	"errors"
	"fmt"

	"github.com/swetharajan7/StellarRec/matcher"
	"github.com/swetharajan7/StellarRec/resource"
)

var (
	// ErrNotFound unifies candidate and resource lookups that missed.
	ErrNotFound = errors.New("not found")

	// ErrNotInitialized is returned when no candidate index has been built.
	ErrNotInitialized = errors.New("candidate index not initialized")

	// ErrAlreadyLoaded is returned when loading a resource name already held.
	ErrAlreadyLoaded = errors.New("resource already loaded")

	// ErrInsufficientMemory is returned when a resource load fails admission.
	ErrInsufficientMemory = errors.New("insufficient memory")

	// ErrUnsupportedKind is returned for a resource config of unknown kind.
	ErrUnsupportedKind = errors.New("unsupported resource kind")
)

// InvalidRequestError indicates a request rejected before any work was done.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type InvalidRequestError struct {
	Field string
	Value any
	cause error
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

func (e *InvalidRequestError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var verr *matcher.ValidationError
	if errors.As(err, &verr) {
		return &InvalidRequestError{Field: verr.Field, Value: verr.Value, cause: err}
	}

	// Not found unification.
	if errors.Is(err, matcher.ErrNotFound) || errors.Is(err, resource.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if errors.Is(err, matcher.ErrNotInitialized) {
		return fmt.Errorf("%w: %w", ErrNotInitialized, err)
	}
	if errors.Is(err, resource.ErrAlreadyLoaded) {
		return fmt.Errorf("%w: %w", ErrAlreadyLoaded, err)
	}
	if errors.Is(err, resource.ErrInsufficientMemory) {
		return fmt.Errorf("%w: %w", ErrInsufficientMemory, err)
	}
	if errors.Is(err, resource.ErrUnsupportedKind) {
		return fmt.Errorf("%w: %w", ErrUnsupportedKind, err)
	}

	return err
}
