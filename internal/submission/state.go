package submission

// State is the lifecycle of one submission
type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submittable reports whether the trigger is enabled in this state
func (s State) Submittable() bool {
	return s == Idle || s == Failed
}
