package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration value no component can
// work with.
var ErrInvalidConfig = errors.New("invalid configuration")

// ParseError describes a TOML syntax problem in a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
