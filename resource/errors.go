package resource

import "errors"

var (
	// ErrNotFound is returned when the named resource is not loaded.
	ErrNotFound = errors.New("resource not loaded")

	// ErrAlreadyLoaded is returned when loading a name that is already held.
	ErrAlreadyLoaded = errors.New("resource already loaded")

	// ErrInsufficientMemory is returned when the admission check fails.
	// Non-fatal: the resource stays unloaded and prior state is untouched.
	ErrInsufficientMemory = errors.New("insufficient memory to load resource")

	// ErrUnsupportedKind is returned for a config of unknown kind.
	ErrUnsupportedKind = errors.New("unsupported resource kind")

	// ErrConstructionFailed wraps errors from resource construction.
	// Manager state is unchanged when construction fails.
	ErrConstructionFailed = errors.New("resource construction failed")
)
