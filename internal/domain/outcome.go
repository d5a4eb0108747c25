package domain

// Status is the terminal status of one orchestrator run.
type Status int

const (
	// StatusAttached means every built file was accepted by the platform.
	StatusAttached Status = iota

	// StatusRejected means the paste was dropped before any work started:
	// below the word threshold, a duplicate, a platform veto, or the
	// orchestrator was busy. Rejections produce no notification.
	StatusRejected

	// StatusCancelled means the user aborted the delay countdown or the
	// rename prompt. The original text was restored. Neutral, not an error.
	StatusCancelled

	// StatusTargetNotFound means no upload control appeared within the
	// discovery timeout. Retryable.
	StatusTargetNotFound

	// StatusDeclined means the platform's attach call refused the file or
	// its completion indicator never cleared. Retryable.
	StatusDeclined
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusAttached:
		return "attached"
	case StatusRejected:
		return "rejected"
	case StatusCancelled:
		return "cancelled"
	case StatusTargetNotFound:
		return "target-not-found"
	case StatusDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// Rejection reasons carried on Outcome.Reason for StatusRejected.
const (
	ReasonDisabled       = "auto-attach disabled"
	ReasonBelowThreshold = "below word threshold"
	ReasonDuplicate      = "duplicate content"
	ReasonBusy           = "another paste in flight"
	ReasonPlatformVeto   = "platform declined interception"
)

// Outcome is the terminal report of one orchestrator run. Exactly one
// Outcome is produced per accepted paste attempt; rejected-before-start
// pastes produce a silent Outcome with StatusRejected.
type Outcome struct {
	Status Status

	// Reason qualifies non-attached outcomes: one of the Reason constants
	// for rejections, or a platform hint for search/attach failures.
	Reason string

	// RunID is the ULID assigned to the run, empty for rejections.
	RunID string

	// Filenames lists every file that was attached, in attach order.
	Filenames []string

	// Retryable reports whether a manual retry is offered to the caller.
	Retryable bool
}

// Attached reports whether the run ended with at least one accepted file.
func (o Outcome) Attached() bool {
	return o.Status == StatusAttached
}
