// Package queue provides bounded FIFO queue implementations.
//
// This package offers three implementations of the Queue interface:
//   - RingBuffer: fixed-capacity circular buffer, single goroutine only
//   - SafeRingBuffer: RingBuffer guarded by a single mutex, safe for any
//     number of concurrent producers and consumers
//   - ChannelQueue: standard library approach using a buffered channel
//
// # Non-blocking contract
//
// No implementation waits for space or data. Push reports ErrFull
// immediately when the queue is at capacity and Pop reports ok == false
// immediately when it is empty. Retry, backoff and drop policies belong
// to the caller.
//
// # Poisoning
//
// If a goroutine panics or exits while holding the SafeRingBuffer lock,
// the buffer is poisoned and every later operation panics with an error
// wrapping ErrPoisoned. A poisoned buffer cannot be recovered.
package queue

import "errors"

var (
	// ErrFull is returned by Push when the queue is at capacity.
	// The queue is left unchanged.
	ErrFull = errors.New("queue: full")

	// ErrPoisoned is the panic value (wrapped) raised by a SafeRingBuffer
	// whose previous lock holder terminated inside the critical section.
	ErrPoisoned = errors.New("queue: poisoned by abandoned lock")
)

// Queue is a bounded, non-blocking FIFO queue.
type Queue[T any] interface {
	// Push adds an item to the tail of the queue.
	// Returns ErrFull if the queue is at capacity.
	Push(T) error

	// Pop removes and returns the item at the head of the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)

	// Len returns the number of items currently queued.
	Len() int

	// Cap returns the fixed capacity of the queue.
	Cap() int
}

// Compile-time interface checks.
var (
	_ Queue[byte] = (*RingBuffer[byte])(nil)
	_ Queue[byte] = (*SafeRingBuffer[byte])(nil)
	_ Queue[byte] = (*ChannelQueue[byte])(nil)
)
