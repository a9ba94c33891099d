package host

import "sync/atomic"

// TickGuard serializes access to the application state and pixel
// buffer without ever blocking. Acquisition either succeeds or fails
// immediately; a caller that loses simply skips its unit of work and
// tries again on its next scheduled invocation.
type TickGuard struct {
	held atomic.Bool
}

// TryAcquire attempts to take the guard. Returns true on success; the
// caller must Release when its work is done. Never blocks.
func (g *TickGuard) TryAcquire() bool {
	return g.held.CompareAndSwap(false, true)
}

// Release returns the guard. Only valid after a successful TryAcquire.
func (g *TickGuard) Release() {
	g.held.Store(false)
}
