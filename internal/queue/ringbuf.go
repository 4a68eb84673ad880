package queue

// RingBuffer is a fixed-capacity FIFO queue over circular storage.
//
// WARNING: RingBuffer is NOT safe for concurrent use. Share a
// SafeRingBuffer between goroutines instead.
//
// Occupied slots are the window [head, head+size) modulo capacity;
// every other slot holds the zero value of T.
type RingBuffer[T any] struct {
	buf  []T
	head int // next slot to read
	tail int // next slot to write
	size int
}

// NewRingBuffer creates a RingBuffer holding at most capacity items.
//
// Capacity is not validated. A zero capacity buffer is both full and
// empty at all times: Push always returns ErrFull and Pop never yields.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	return &RingBuffer[T]{
		buf: make([]T, capacity),
	}
}

// IsEmpty reports whether the buffer holds no items.
func (r *RingBuffer[T]) IsEmpty() bool {
	return r.size == 0
}

// IsFull reports whether the buffer is at capacity.
func (r *RingBuffer[T]) IsFull() bool {
	return r.size == len(r.buf)
}

// Push writes v at the tail.
// Returns ErrFull without touching storage if the buffer is full.
func (r *RingBuffer[T]) Push(v T) error {
	if r.IsFull() {
		return ErrFull
	}

	r.buf[r.tail] = v
	r.tail = (r.tail + 1) % len(r.buf)
	r.size++

	return nil
}

// Pop removes and returns the item at the head.
// Returns false if the buffer is empty; this is not an error.
func (r *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if r.IsEmpty() {
		return zero, false
	}

	// Take the value and clear the slot so it no longer pins memory.
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.size--

	return v, true
}

// Len returns the number of items in the buffer.
func (r *RingBuffer[T]) Len() int {
	return r.size
}

// Cap returns the capacity of the buffer.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}
