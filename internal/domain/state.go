package domain

// JobState is the lifecycle of a merge job. Transitions are monotonic:
// Pending -> Planning -> Running -> Completed | Cancelled | Failed.
type JobState int

const (
	StatePending JobState = iota
	StatePlanning
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s JobState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StatePlanning:
		return "planning"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

func (s JobState) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}
