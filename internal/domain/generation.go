package domain

// GenerationState is the controller's externally observable phase.
type GenerationState string

const (
	StateIdle             GenerationState = "idle"
	StateValidating       GenerationState = "validating"
	StateAwaitingProvider GenerationState = "awaiting_provider"
	StateRevealing        GenerationState = "revealing"
	StateError            GenerationState = "error"
)

// Busy reports whether a pipeline is running in this state.
func (s GenerationState) Busy() bool {
	switch s {
	case StateValidating, StateAwaitingProvider, StateRevealing:
		return true
	default:
		return false
	}
}

// Snapshot is the controller's observable status at one instant.
type Snapshot struct {
	State   GenerationState
	Request GenerationRequest
	// Result is the text on display; during a reveal it is the current prefix.
	Result  string
	Error   string
	ErrKind ErrorKind
	// Committed is set once a successful pipeline has written its entry.
	Committed *HistoryEntry
}

// Loading mirrors the busy flag used by presentation to disable submission.
func (s Snapshot) Loading() bool {
	return s.State.Busy()
}
