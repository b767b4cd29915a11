// Package replay defines the replay data model and the binary codec
// used for replay blobs.
package replay

// Event is a single press or release scheduled at a frame.
type Event struct {
	Frame       int64 // Frame the event fires on
	Down        bool  // true = press, false = release
	AltIdentity bool  // use the secondary synthetic identity
}

// Replay is an ordered, named sequence of events indexed by frame.
//
// Events are stored exactly as decoded. The producer contract requires
// frames to be non-decreasing; the codec does not enforce or repair
// this, and a misordered record behind the playback cursor is never
// reached.
type Replay struct {
	Name   string
	FPS    float64
	Events []Event
}

// TotalEvents returns the number of decoded events.
func (r *Replay) TotalEvents() int {
	return len(r.Events)
}

// LastFrame returns the frame of the final event, or 0 for an empty
// replay.
func (r *Replay) LastFrame() int64 {
	if len(r.Events) == 0 {
		return 0
	}
	return r.Events[len(r.Events)-1].Frame
}
