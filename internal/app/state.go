package app

// RunState tracks where the orchestrator is within one paste run.
type RunState int

const (
	StateIdle RunState = iota
	StateCaptured
	StateDelaying
	StateBuilding
	StateSearching
	StateAttached
	StateFailed
)

// String returns a human-readable representation of the state.
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCaptured:
		return "Captured"
	case StateDelaying:
		return "Delaying"
	case StateBuilding:
		return "Building"
	case StateSearching:
		return "Searching"
	case StateAttached:
		return "Attached"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
