package queue

import (
	"fmt"
	"sync"
)

// SafeRingBuffer is a RingBuffer that may be shared by any number of
// producer and consumer goroutines.
//
// Every operation holds a single mutex for its whole duration, so
// operations are totally ordered by lock acquisition and the global push
// order determines the global pop order. Nothing blocks other than the
// lock itself: a full or empty buffer is reported to the caller at once.
//
// The *SafeRingBuffer pointer is the shared handle; the buffer lives as
// long as any goroutine still references it.
type SafeRingBuffer[T any] struct {
	mu       sync.Mutex
	rb       RingBuffer[T]
	poisoned bool
}

// NewSafeRingBuffer creates a SafeRingBuffer holding at most capacity items.
func NewSafeRingBuffer[T any](capacity int) *SafeRingBuffer[T] {
	return &SafeRingBuffer[T]{
		rb: RingBuffer[T]{buf: make([]T, capacity)},
	}
}

// locked runs fn on the inner buffer while holding the lock.
//
// If fn does not return normally (panic or runtime.Goexit) the buffer is
// poisoned before the lock is released. Entering a poisoned buffer panics.
func (s *SafeRingBuffer[T]) locked(fn func(rb *RingBuffer[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		panic(fmt.Errorf("%w: capacity %d", ErrPoisoned, s.rb.Cap()))
	}

	done := false
	defer func() {
		if !done {
			s.poisoned = true
		}
	}()

	fn(&s.rb)
	done = true
}

// Push adds v to the tail.
// Returns ErrFull if the buffer is at capacity.
func (s *SafeRingBuffer[T]) Push(v T) error {
	var err error
	s.locked(func(rb *RingBuffer[T]) {
		err = rb.Push(v)
	})
	return err
}

// Pop removes and returns the item at the head.
// Returns false if the buffer is empty.
func (s *SafeRingBuffer[T]) Pop() (T, bool) {
	var (
		v  T
		ok bool
	)
	s.locked(func(rb *RingBuffer[T]) {
		v, ok = rb.Pop()
	})
	return v, ok
}

// Len returns the number of queued items at the moment the lock was held.
// The value may be stale by the time the caller inspects it.
func (s *SafeRingBuffer[T]) Len() int {
	var n int
	s.locked(func(rb *RingBuffer[T]) {
		n = rb.Len()
	})
	return n
}

// Cap returns the capacity of the buffer.
func (s *SafeRingBuffer[T]) Cap() int {
	var n int
	s.locked(func(rb *RingBuffer[T]) {
		n = rb.Cap()
	})
	return n
}

// IsEmpty reports whether the buffer was empty while the lock was held.
func (s *SafeRingBuffer[T]) IsEmpty() bool {
	var empty bool
	s.locked(func(rb *RingBuffer[T]) {
		empty = rb.IsEmpty()
	})
	return empty
}

// IsFull reports whether the buffer was full while the lock was held.
func (s *SafeRingBuffer[T]) IsFull() bool {
	var full bool
	s.locked(func(rb *RingBuffer[T]) {
		full = rb.IsFull()
	})
	return full
}
