package scan

// State enumerates scan loop states.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// StateListener is called on each state transition.
type StateListener func(prev, next State)

// Dispatcher starts a press for key without blocking.
type Dispatcher interface {
	Dispatch(key string) bool
}

// Control gates the loop.
type Control interface {
	Paused() bool
	Failsafe() bool
}

// Recorder receives loop state for display.
type Recorder interface {
	SetThroughput(fps float64)
	SetState(name string)
	Debug(msg string)
}
