// Package correlator implements the legit-mode policy: a synthetic
// event is only executed when a genuine input of the same direction was
// observed close to its frame.
package correlator

import (
	"sync"

	"github.com/younwookim/ghostinput/internal/domain/replay"
)

// Window is the inclusive frame window a genuine input corroborates.
// A live event at frame L matches replay frames in [L-Before, L+After].
// Symmetric and asymmetric windows are both in use; keep it a setting.
type Window struct {
	Before int64
	After  int64
}

// DefaultWindow allows +/-3 frames, a 100ms slack at 60fps.
var DefaultWindow = Window{Before: 3, After: 3}

// DefaultHorizon is how many frames a live event is retained before
// pruning. Only needs to exceed Window spans by a comfortable margin.
const DefaultHorizon int64 = 120

type liveEvent struct {
	frame int64
	down  bool
}

// Correlator keeps a bounded log of genuine input events and decides
// whether a due replay event should actually execute.
//
// Record may be called from whatever thread the host delivers input on;
// the log is mutex-guarded for that reason even when the host happens
// to deliver on the tick thread.
type Correlator struct {
	mu         sync.Mutex
	log        []liveEvent
	active     bool
	ignoreLive bool
	window     Window
	horizon    int64
}

// New creates a correlator with the given window and retention horizon.
// Non-positive horizon falls back to DefaultHorizon.
func New(window Window, horizon int64) *Correlator {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Correlator{window: window, horizon: horizon}
}

// SetActive toggles legit mode. While inactive, Record is a no-op and
// ShouldExecute always allows.
func (c *Correlator) SetActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
}

// SetIgnoreLive sets the override that bypasses correlation while
// legit mode stays on.
func (c *Correlator) SetIgnoreLive(ignore bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ignoreLive = ignore
}

// Active reports whether legit mode is on.
func (c *Correlator) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Record appends a genuine input observation. No-op while legit mode
// is inactive.
func (c *Correlator) Record(down bool, frame int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.log = append(c.log, liveEvent{frame: frame, down: down})
}

// ShouldExecute decides whether a due replay event runs. The caller
// advances its cursor either way; a skip is permanent.
func (c *Correlator) ShouldExecute(ev replay.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || c.ignoreLive {
		return true
	}
	for _, le := range c.log {
		if le.down != ev.Down {
			continue
		}
		if ev.Frame >= le.frame-c.window.Before && ev.Frame <= le.frame+c.window.After {
			return true
		}
	}
	return false
}

// Prune drops live events older than the retention horizon. Called
// every tick so the log stays bounded over long sessions.
func (c *Correlator) Prune(current int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := current - c.horizon
	keep := 0
	for keep < len(c.log) && c.log[keep].frame < cutoff {
		keep++
	}
	if keep > 0 {
		c.log = append(c.log[:0], c.log[keep:]...)
	}
}

// Reset clears the log. Every playback start resets correlation state.
func (c *Correlator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = c.log[:0]
}

// LogSize returns the current number of retained live events.
func (c *Correlator) LogSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.log)
}
