package scheduler

// State is the playback state machine position.
type State int

const (
	StateIdle State = iota
	StateLoaded
	StatePlaying
	StateFinished
)

// String returns the string representation of the playback state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoaded:
		return "Loaded"
	case StatePlaying:
		return "Playing"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}
