package host

import "errors"

// Sentinel errors for host interactions.
var (
	// ErrInvalidResult is returned when the host's creation payload does
	// not identify a usable float.
	ErrInvalidResult = errors.New("invalid render result")

	// ErrNotAttached is returned when an operation requires a live host
	// connection and there is none.
	ErrNotAttached = errors.New("not attached to a host")

	// ErrAlreadyAttached is returned when attaching a component that is
	// already attached.
	ErrAlreadyAttached = errors.New("already attached")
)
