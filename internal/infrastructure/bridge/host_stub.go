//go:build !darwin && !linux

package bridge

// NewHost returns the inert bridge on platforms without dlopen/dlsym
// support; the engine runs in degraded mode there.
func NewHost(Options) Bridge {
	return Offline{}
}
