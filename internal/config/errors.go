package config

import "fmt"

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
