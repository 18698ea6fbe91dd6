package renderer

import "errors"

var (
	ErrNotStarted     = errors.New("renderer: not started")
	ErrAlreadyStarted = errors.New("renderer: already started")
	ErrTornDown       = errors.New("renderer: already ended")
	ErrStartFailed    = errors.New("renderer: start failed")
)
