package domain

import (
	"fmt"
	"time"
)

// FormatAuto requests classifier-driven format selection.
const FormatAuto = "auto"

// Default settings values.
const (
	DefaultWordThreshold = 500
	DefaultDelaySeconds  = 3
	DefaultMaxParts      = 4
	DefaultSearchTimeout = 5 * time.Second
)

// Settings is the immutable per-paste settings snapshot. The settings source
// creates it; the core only reads it. One snapshot governs exactly one
// orchestrator run, so a mid-run settings change never alters in-flight
// behavior.
type Settings struct {
	// WordThreshold is the minimum word count for a paste to be intercepted.
	WordThreshold int

	// AutoAttach enables the engine. When false every paste is rejected.
	AutoAttach bool

	// DelayEnabled inserts a cancellable countdown before building files.
	DelayEnabled bool

	// DelaySeconds is the countdown length when DelayEnabled is set.
	DelaySeconds int

	// Format is the target format: "auto" or an explicit format name.
	Format string

	// BatchMode enables splitting oversized pastes into multiple files.
	BatchMode bool

	// MaxParts bounds the number of files batch mode may produce.
	MaxParts int

	// PlatformOverrides holds per-platform opt-in flags, keyed by platform
	// name. Platforms with a competing native paste-to-file feature only
	// intercept when their flag is set.
	PlatformOverrides map[string]bool

	// SearchTimeout bounds the upload-target discovery poll.
	SearchTimeout time.Duration
}

// DefaultSettings returns a Settings snapshot with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		WordThreshold: DefaultWordThreshold,
		AutoAttach:    true,
		DelayEnabled:  false,
		DelaySeconds:  DefaultDelaySeconds,
		Format:        FormatAuto,
		BatchMode:     false,
		MaxParts:      DefaultMaxParts,
		SearchTimeout: DefaultSearchTimeout,
	}
}

// Validate checks the snapshot for values the orchestrator cannot honor.
func (s Settings) Validate() error {
	if s.WordThreshold < 0 {
		return fmt.Errorf("%w: word threshold must be >= 0, got %d", ErrInvalidSettings, s.WordThreshold)
	}
	if s.DelayEnabled && s.DelaySeconds <= 0 {
		return fmt.Errorf("%w: delay seconds must be > 0 when delay is enabled, got %d", ErrInvalidSettings, s.DelaySeconds)
	}
	if s.BatchMode && s.MaxParts < 2 {
		return fmt.Errorf("%w: max parts must be >= 2 in batch mode, got %d", ErrInvalidSettings, s.MaxParts)
	}
	if s.SearchTimeout <= 0 {
		return fmt.Errorf("%w: search timeout must be > 0, got %v", ErrInvalidSettings, s.SearchTimeout)
	}
	if s.Format == "" {
		return fmt.Errorf("%w: format must be %q or an explicit format name", ErrInvalidSettings, FormatAuto)
	}
	return nil
}

// OverrideEnabled reports whether the per-platform opt-in flag is set for
// the named platform.
func (s Settings) OverrideEnabled(platform string) bool {
	return s.PlatformOverrides[platform]
}
