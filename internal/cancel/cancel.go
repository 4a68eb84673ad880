// Package cancel provides stop signals for queue worker loops.
//
// Producers retrying a full queue and consumers polling an empty one
// check for cancellation on every spin, so the check has to be cheap:
//   - ContextCanceler: wraps context.Context, each Done() is a select
//   - AtomicCanceler: a single atomic load per Done()
//
// Watch bridges a context to an AtomicCanceler so worker loops poll the
// atomic flag instead of the context.
package cancel

import "context"

// Canceler signals workers to stop.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true once cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// Watch returns an AtomicCanceler that is cancelled when ctx is done.
//
// The watching goroutine exits once ctx is done, so ctx must eventually
// be cancelled (an errgroup context is, when Wait returns).
func Watch(ctx context.Context) *AtomicCanceler {
	a := NewAtomic()
	go func() {
		<-ctx.Done()
		a.Cancel()
	}()
	return a
}
