package ports

import "context"

// Level categorizes user-facing notifications.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

// String returns a human-readable representation of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Presenter is the toast/loader/modal surface the core reports through.
// The core never manipulates presentation internals directly, and every
// accepted paste attempt ends in exactly one Notify call.
type Presenter interface {
	// ShowProgress displays or updates a transient progress message.
	ShowProgress(msg string)

	// HideProgress removes the progress message, if any.
	HideProgress()

	// ConfirmRename asks the user for a custom base filename, offering
	// suggested. Returns domain.ErrRenameCancelled when the user dismisses
	// the prompt; any other error is treated the same way.
	ConfirmRename(ctx context.Context, suggested string) (string, error)

	// Notify shows a terminal notification for the paste attempt.
	Notify(msg string, level Level)
}
