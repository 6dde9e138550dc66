package app

import "errors"

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrShutdown indicates the application has been shut down.
	ErrShutdown = errors.New("application shut down")

	// ErrNoAddress indicates no Neovim address could be determined.
	ErrNoAddress = errors.New("no neovim address (set --addr or run inside nvim)")
)

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
