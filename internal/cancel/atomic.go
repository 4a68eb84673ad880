package cancel

import "sync/atomic"

// AtomicCanceler uses an atomic.Bool as the stop flag.
//
// Done() is one atomic load, so a worker can check it on every
// Full retry or empty poll without going through a channel select.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done returns true if cancellation has been triggered.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel triggers cancellation.
// Subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Reset clears the flag so the canceler can drive another run.
// Not safe to call concurrently with Done() or Cancel().
func (a *AtomicCanceler) Reset() {
	a.done.Store(false)
}
