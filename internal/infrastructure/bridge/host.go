//go:build darwin || linux

package bridge

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Host performs real in-process interception and injection against the
// input entry points of a known host build.
//
// Resolution runs once, lazily. Any failure leaves the bridge offline
// for the rest of the session; callers keep ticking regardless.
type Host struct {
	opts Options

	mu          sync.Mutex
	attempted   bool
	online      bool
	installed   bool
	layout      HostLayout
	view        uintptr
	manager     uintptr
	pressOrig   uintptr
	releaseOrig uintptr
	observe     Observer
}

// NewHost creates a host bridge. Nothing is resolved until Resolve or
// the first Inject.
func NewHost(opts Options) Bridge {
	return &Host{opts: opts}
}

func (h *Host) Resolve() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resolveLocked()
}

func (h *Host) resolveLocked() error {
	if h.attempted {
		if h.online {
			return nil
		}
		return ErrOffline
	}
	h.attempted = true

	layout, err := LookupLayout(h.opts.BuildID)
	if err != nil {
		return fmt.Errorf("resolving host %q: %w", h.opts.BuildID, err)
	}

	lib, err := purego.Dlopen(h.opts.Library, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("opening host library: %w", err)
	}

	sym, err := purego.Dlsym(lib, layout.ManagerSym)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", layout.ManagerSym, err)
	}

	manager, _, _ := purego.SyscallN(sym)
	if manager == 0 {
		return fmt.Errorf("%s returned nil manager: %w", layout.ManagerSym, ErrOffline)
	}

	// Probe the magic word before trusting any structural offset.
	magic := *(*uint32)(unsafe.Pointer(manager + layout.MagicOffset))
	if magic != layout.Magic {
		return fmt.Errorf("manager magic %#x != %#x: %w", magic, layout.Magic, ErrUnsupportedVersion)
	}

	view := *(*uintptr)(unsafe.Pointer(manager + layout.ViewOffset))
	pressOrig := *(*uintptr)(unsafe.Pointer(manager + layout.PressSlot))
	releaseOrig := *(*uintptr)(unsafe.Pointer(manager + layout.ReleaseSlot))
	if view == 0 || pressOrig == 0 || releaseOrig == 0 {
		return fmt.Errorf("manager layout has nil slots: %w", ErrUnsupportedVersion)
	}

	h.layout = layout
	h.manager = manager
	h.view = view
	h.pressOrig = pressOrig
	h.releaseOrig = releaseOrig
	h.online = true
	return nil
}

// Install replaces the press/release slots with trampolines that
// notify observe and call through to the saved originals with
// unmodified arguments. Idempotent; process-wide.
func (h *Host) Install(observe Observer) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.resolveLocked(); err != nil {
		return err
	}
	h.observe = observe
	if h.installed {
		return nil
	}

	press := purego.NewCallback(func(view, ident, x, y uintptr) uintptr {
		h.notify(true)
		r1, _, _ := purego.SyscallN(h.pressOrig, view, ident, x, y)
		return r1
	})
	release := purego.NewCallback(func(view, ident, x, y uintptr) uintptr {
		h.notify(false)
		r1, _, _ := purego.SyscallN(h.releaseOrig, view, ident, x, y)
		return r1
	})

	*(*uintptr)(unsafe.Pointer(h.manager + h.layout.PressSlot)) = press
	*(*uintptr)(unsafe.Pointer(h.manager + h.layout.ReleaseSlot)) = release
	h.installed = true
	return nil
}

func (h *Host) notify(down bool) {
	h.mu.Lock()
	observe := h.observe
	h.mu.Unlock()
	if observe != nil {
		observe(down)
	}
}

// Inject calls the original press or release entry point with a
// synthetic identity at the fixed coordinates.
func (h *Host) Inject(down, alt bool) error {
	h.mu.Lock()
	if err := h.resolveLocked(); err != nil {
		h.mu.Unlock()
		return err
	}
	fn := h.releaseOrig
	if down {
		fn = h.pressOrig
	}
	view := h.view
	h.mu.Unlock()

	ident := h.opts.Identity
	if alt {
		ident = h.opts.AltIdentity
	}
	purego.SyscallN(fn, view, uintptr(ident), uintptr(h.opts.X), uintptr(h.opts.Y))
	return nil
}

func (h *Host) Online() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.online
}
