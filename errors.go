package squall

import "errors"

// ErrAlreadyStarted is returned by Run when the program has already
// been started. A Program runs at most once.
var ErrAlreadyStarted = errors.New("program already started")

// SetupError reports a terminal acquisition failure during Run, before
// any model code has executed. Whatever setup had already been applied
// is rolled back.
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return "setup " + e.Stage + ": " + e.Err.Error()
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// RenderError reports a failed frame write mid-run. The loop stops and
// the error is surfaced from Run after the terminal has been restored.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "render: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
