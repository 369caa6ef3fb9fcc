package app

// State is the reactive loop's lifecycle stage.
type State int32

const (
	StateConnecting State = iota
	StateIdle
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateIdle:
		return "idle"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
