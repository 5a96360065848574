package app

import "errors"

// Application errors.
var (
	// ErrQuit signals that the application should exit normally. The
	// builtin "quit" dispatcher returns it from its handler.
	ErrQuit = errors.New("quit requested")

	// ErrNoBackend indicates Run was called before SetBackend.
	ErrNoBackend = errors.New("no input backend configured")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")
)
