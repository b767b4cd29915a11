// Package scheduler owns the frame counter and the replay cursor. It
// is driven by the host's own per-frame clock, one Tick per rendered
// frame; there is no internal timer.
package scheduler

import (
	"github.com/younwookim/ghostinput/internal/domain/replay"
)

// Decider gates each due event. Satisfied by correlator.Correlator.
type Decider interface {
	ShouldExecute(ev replay.Event) bool
	Prune(current int64)
	Reset()
}

// Injector issues the synthetic native call. Satisfied by
// bridge.Bridge. Errors are degradation, not failure: the cursor
// advances either way.
type Injector interface {
	Inject(down, alt bool) error
}

// Scheduler consumes a loaded replay frame by frame. All mutation
// happens on the tick/control path; observers read snapshots.
type Scheduler struct {
	state    State
	rep      *replay.Replay
	current  int64
	next     int
	executed int64
	enabled  bool

	decider  Decider
	injector Injector
}

// New creates a scheduler. The master enable flag starts set.
func New(decider Decider, injector Injector) *Scheduler {
	return &Scheduler{
		state:    StateIdle,
		enabled:  true,
		decider:  decider,
		injector: injector,
	}
}

// Load replaces the current replay wholesale and resets the cursor.
// Callers only reach Load with a successfully decoded replay; a failed
// decode leaves the previously loaded replay untouched.
func (s *Scheduler) Load(rep *replay.Replay) {
	s.rep = rep
	s.resetCursor()
	s.state = StateLoaded
}

// Start begins playback from frame zero. Every start is a full reset
// of the cursor and the correlation log; there is no pause/resume.
// Repeated starts are idempotent. Returns false when nothing is
// loaded.
func (s *Scheduler) Start() bool {
	if s.rep == nil {
		return false
	}
	s.resetCursor()
	s.decider.Reset()
	s.state = StatePlaying
	return true
}

// Stop halts playback, retaining the replay. Idempotent.
func (s *Scheduler) Stop() {
	if s.rep != nil {
		s.state = StateLoaded
	} else {
		s.state = StateIdle
	}
}

// SetEnabled sets the master enable flag. While clear, Tick is a
// complete no-op: no frame advance, no consumption. Distinct from Stop,
// which also tears down the clock subscription.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports the master enable flag.
func (s *Scheduler) Enabled() bool {
	return s.enabled
}

// Tick advances one frame and consumes every event due at or before
// the new frame. Skipped events are never retried; the event index
// only moves forward. Returns true on the tick that exhausts the
// replay, so the caller can cancel its clock subscription.
func (s *Scheduler) Tick() (finished bool) {
	if !s.enabled || s.state != StatePlaying {
		return false
	}

	s.current++
	s.decider.Prune(s.current)

	events := s.rep.Events
	for s.next < len(events) && events[s.next].Frame <= s.current {
		ev := events[s.next]
		s.next++
		if s.decider.ShouldExecute(ev) {
			s.executed++
			_ = s.injector.Inject(ev.Down, ev.AltIdentity)
		}
	}

	if s.next >= len(events) {
		s.state = StateFinished
		return true
	}
	return false
}

// State returns the current playback state.
func (s *Scheduler) State() State {
	return s.state
}

// CurrentFrame returns the frame counter.
func (s *Scheduler) CurrentFrame() int64 {
	return s.current
}

// ExecutedCount returns how many events were decided to execute since
// the last start.
func (s *Scheduler) ExecutedCount() int64 {
	return s.executed
}

// Replay returns the loaded replay, or nil.
func (s *Scheduler) Replay() *replay.Replay {
	return s.rep
}

func (s *Scheduler) resetCursor() {
	s.current = 0
	s.next = 0
	s.executed = 0
}
