// Package bridge resolves the host process's input entry points and
// provides call interception and synthetic injection against them.
//
// Everything behind the Bridge interface degrades to a no-op: playback
// keeps advancing even when no bridge ever comes online.
package bridge

import "errors"

var (
	// ErrOffline reports that entry-point resolution never succeeded
	// and injection/interception are no-ops for the session.
	ErrOffline = errors.New("bridge: offline")

	// ErrUnsupportedVersion reports that the running host's build id
	// has no entry in the structural offset table.
	ErrUnsupportedVersion = errors.New("bridge: unsupported host version")
)

// Options configures the host bridge.
type Options struct {
	// Library is the path of the host library exporting the input
	// manager symbol.
	Library string
	// BuildID identifies the host build; it keys the offset table.
	BuildID string
	// X, Y are the fixed screen coordinates used for every synthetic
	// call. The host only needs a consistent location.
	X, Y int
	// Identity and AltIdentity are the synthetic pointer/touch ids.
	Identity    uint64
	AltIdentity uint64
}

// Observer receives genuine input observed by the intercept trampoline.
// down reports press (true) or release (false). It runs on whatever
// thread the host delivers input on.
type Observer func(down bool)

// Bridge is the native-call capability consumed by the scheduler.
//
// Resolve locates the host entry points; it is lazy, cached and
// idempotent, and a failure permanently disables the bridge for the
// session. Install replaces the entry points with trampolines that
// notify the Observer and call through unchanged. Inject calls the
// original press/release entry with a synthetic identity; alt selects
// the secondary identity.
type Bridge interface {
	Resolve() error
	Install(observe Observer) error
	Inject(down, alt bool) error
	Online() bool
}

// Offline is the permanently inert Bridge. Used on unsupported
// platforms and wherever the engine runs without a host library.
type Offline struct{}

func (Offline) Resolve() error         { return ErrOffline }
func (Offline) Install(Observer) error { return ErrOffline }
func (Offline) Inject(_, _ bool) error { return ErrOffline }
func (Offline) Online() bool           { return false }

// Injection is one synthetic call recorded by the Recording double.
type Injection struct {
	Down bool
	Alt  bool
}

// Recording is a Bridge test double that records injections and can be
// forced offline via ResolveErr.
type Recording struct {
	ResolveErr error
	Injections []Injection

	observer Observer
	resolved bool
}

func (r *Recording) Resolve() error {
	if r.ResolveErr != nil {
		return r.ResolveErr
	}
	r.resolved = true
	return nil
}

func (r *Recording) Install(observe Observer) error {
	if !r.resolved {
		return ErrOffline
	}
	r.observer = observe
	return nil
}

func (r *Recording) Inject(down, alt bool) error {
	if !r.resolved {
		return ErrOffline
	}
	r.Injections = append(r.Injections, Injection{Down: down, Alt: alt})
	return nil
}

func (r *Recording) Online() bool { return r.resolved }

// Deliver simulates the host calling an intercepted entry point,
// driving the installed trampoline's observer.
func (r *Recording) Deliver(down bool) {
	if r.observer != nil {
		r.observer(down)
	}
}
