// Package engine wires the codec, correlator, scheduler and bridge
// together and exposes the control and status surface the panel layer
// talks to.
package engine

import (
	"fmt"
	"sync"

	"github.com/younwookim/ghostinput/internal/application/correlator"
	"github.com/younwookim/ghostinput/internal/application/scheduler"
	"github.com/younwookim/ghostinput/internal/domain/replay"
	"github.com/younwookim/ghostinput/internal/infrastructure/bridge"
	"github.com/younwookim/ghostinput/internal/infrastructure/config"
	"github.com/younwookim/ghostinput/internal/infrastructure/storage"
)

// TickSource is the host's per-frame clock. Subscribe registers fn to
// be called once per rendered frame and returns a cancel that
// guarantees no further call after it returns.
type TickSource interface {
	Subscribe(fn func()) (cancel func())
}

// Engine owns the playback core. All control calls and ticks are
// serialized on an internal mutex; status listeners are invoked
// outside it with snapshot values.
type Engine struct {
	mu          sync.Mutex
	store       storage.Store
	corr        *correlator.Correlator
	sched       *scheduler.Scheduler
	br          bridge.Bridge
	clock       TickSource
	unsubscribe func()

	bridgeFailed bool
	lastExecuted int64

	onStatus      func(string)
	onExecuted    func(int64)
	onListChanged func()
}

// New builds an engine from its collaborators. The correlator and
// scheduler are constructed here from config; store, bridge and clock
// are injected.
func New(cfg *config.Config, store storage.Store, br bridge.Bridge, clock TickSource) *Engine {
	corr := correlator.New(correlator.Window{
		Before: cfg.Correlator.WindowBefore,
		After:  cfg.Correlator.WindowAfter,
	}, cfg.Correlator.Horizon)

	return &Engine{
		store: store,
		corr:  corr,
		sched: scheduler.New(corr, br),
		br:    br,
		clock: clock,
	}
}

// OnStatus registers the status text listener.
func (e *Engine) OnStatus(fn func(string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStatus = fn
}

// OnExecutedCount registers the executed-count listener.
func (e *Engine) OnExecutedCount(fn func(int64)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onExecuted = fn
}

// OnReplayListChanged registers the replay list listener.
func (e *Engine) OnReplayListChanged(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onListChanged = fn
}

// Load reads and decodes a named replay blob, replacing the current
// replay wholesale; in-flight playback halts and the clock
// subscription is cancelled before Load returns. On any failure the
// currently loaded replay is left untouched.
func (e *Engine) Load(name string) error {
	data, err := e.store.ReadBlob(name)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}

	rep, err := replay.Decode(name, data)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}

	e.mu.Lock()
	e.cancelClockLocked()
	e.sched.Load(rep)
	status, fn := e.statusLocked()
	e.mu.Unlock()

	notify(fn, status)
	return nil
}

// Start begins playback from frame zero and subscribes to the clock.
// The bridge is resolved and its trampolines installed on the first
// start; a resolution failure degrades to offline operation and
// playback proceeds cursor-advance-only.
func (e *Engine) Start() {
	e.mu.Lock()

	if !e.bridgeFailed && !e.br.Online() {
		if err := e.br.Resolve(); err != nil {
			e.bridgeFailed = true
		} else if err := e.br.Install(e.Observe); err != nil {
			e.bridgeFailed = true
		}
	}

	if !e.sched.Start() {
		status, fn := e.statusLocked()
		e.mu.Unlock()
		notify(fn, status)
		return
	}

	e.lastExecuted = 0
	if e.unsubscribe == nil {
		e.unsubscribe = e.clock.Subscribe(e.tick)
	}
	status, fn := e.statusLocked()
	execFn := e.onExecuted
	e.mu.Unlock()

	notify(fn, status)
	if execFn != nil {
		execFn(0)
	}
}

// Stop halts playback and cancels the clock subscription before
// returning; no tick is delivered afterwards.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.cancelClockLocked()
	e.sched.Stop()
	status, fn := e.statusLocked()
	e.mu.Unlock()

	notify(fn, status)
}

// SetEnabled sets the master enable flag; while clear ticks advance
// nothing but the clock subscription stays up.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	e.sched.SetEnabled(enabled)
	e.mu.Unlock()
}

// SetLegitMode toggles correlation against genuine input.
func (e *Engine) SetLegitMode(active bool) {
	e.corr.SetActive(active)
}

// SetIgnoreLiveInputs toggles the override that bypasses correlation
// while legit mode stays on.
func (e *Engine) SetIgnoreLiveInputs(ignore bool) {
	e.corr.SetIgnoreLive(ignore)
}

// Names lists the available replays.
func (e *Engine) Names() ([]string, error) {
	return e.store.ListNames()
}

// Delete removes a stored replay blob and fires the list listener.
func (e *Engine) Delete(name string) error {
	if err := e.store.DeleteBlob(name); err != nil {
		return err
	}
	e.mu.Lock()
	fn := e.onListChanged
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

// Observe is the trampoline target for genuine input: it stamps the
// scheduler's current frame and records into the correlator. Safe to
// call from the host's input thread.
func (e *Engine) Observe(down bool) {
	e.mu.Lock()
	frame := e.sched.CurrentFrame()
	e.mu.Unlock()
	e.corr.Record(down, frame)
}

// ExecutedCount returns the executions decided since the last start.
func (e *Engine) ExecutedCount() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sched.ExecutedCount()
}

// State returns the scheduler state.
func (e *Engine) State() scheduler.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sched.State()
}

// Status returns the current status text.
func (e *Engine) Status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	status, _ := e.statusLocked()
	return status
}

// tick runs once per host frame via the clock subscription.
func (e *Engine) tick() {
	e.mu.Lock()

	finished := e.sched.Tick()
	executed := e.sched.ExecutedCount()

	var execFn func(int64)
	if executed != e.lastExecuted {
		e.lastExecuted = executed
		execFn = e.onExecuted
	}

	var statusFn func(string)
	var status string
	if finished {
		e.cancelClockLocked()
		status, statusFn = e.statusLocked()
	}
	e.mu.Unlock()

	if execFn != nil {
		execFn(executed)
	}
	notify(statusFn, status)
}

func (e *Engine) cancelClockLocked() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

func (e *Engine) statusLocked() (string, func(string)) {
	var text string
	switch st := e.sched.State(); st {
	case scheduler.StateIdle:
		text = "idle"
	case scheduler.StateLoaded:
		text = fmt.Sprintf("loaded %s", e.sched.Replay().Name)
	case scheduler.StatePlaying:
		text = fmt.Sprintf("playing %s", e.sched.Replay().Name)
	case scheduler.StateFinished:
		text = fmt.Sprintf("finished %s (%d executed)", e.sched.Replay().Name, e.sched.ExecutedCount())
	default:
		text = st.String()
	}
	if e.bridgeFailed {
		text += " [bridge offline]"
	}
	return text, e.onStatus
}

func notify(fn func(string), status string) {
	if fn != nil {
		fn(status)
	}
}
