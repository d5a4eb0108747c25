package domain

import "errors"

// Domain errors represent error conditions in the textdrop domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrBusy is returned when a paste arrives while another run is in flight.
	ErrBusy = errors.New("textdrop: orchestrator busy")

	// ErrClosed is returned when the engine has been closed.
	ErrClosed = errors.New("textdrop: engine closed")

	// ErrInvalidSettings is returned when settings validation fails.
	ErrInvalidSettings = errors.New("textdrop: invalid settings")

	// ErrNoRetry is returned when Retry is called with nothing to retry
	// or after the retry budget is exhausted.
	ErrNoRetry = errors.New("textdrop: nothing to retry")

	// ErrRenameCancelled is returned by presenters when the user dismisses
	// the rename prompt.
	ErrRenameCancelled = errors.New("textdrop: rename cancelled")
)
