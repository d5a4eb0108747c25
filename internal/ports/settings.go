package ports

import "github.com/textdrop/textdrop/internal/domain"

// SettingsSource provides settings snapshots and change notifications.
// The core reads one snapshot per paste and treats it as immutable for the
// duration of that run.
type SettingsSource interface {
	// Settings returns the current settings snapshot.
	Settings() domain.Settings

	// Subscribe registers a callback invoked after any settings change.
	// Callbacks run on the source's own goroutine and must return quickly.
	// The returned func cancels the subscription.
	Subscribe(fn func(domain.Settings)) (cancel func())
}
