package jobs

// State is the lifecycle of one task inside a job.
type State string

const (
	StateWaiting   State = "waiting"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

var validTransitions = map[State][]State{
	StateWaiting:   {StateRunning, StateFailed},
	StateRunning:   {StateCompleted, StateFailed},
	StateCompleted: {},
	StateFailed:    {},
}

// CanTransitionTo returns true if moving from s to target is allowed.
func (s State) CanTransitionTo(target State) bool {
	for _, v := range validTransitions[s] {
		if v == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true for completed and failed.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}
