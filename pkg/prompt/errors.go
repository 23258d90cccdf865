package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g. Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoOptions is returned when a choice prompt has nothing to offer.
	ErrNoOptions = errors.New("prompt: no options")
)
