package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/safe-ring/internal/queue"
)

type factory struct {
	name string
	new  func(capacity int) queue.Queue[byte]
}

var factories = []factory{
	{"RingBuffer", func(c int) queue.Queue[byte] { return queue.NewRingBuffer[byte](c) }},
	{"SafeRingBuffer", func(c int) queue.Queue[byte] { return queue.NewSafeRingBuffer[byte](c) }},
	{"Channel", func(c int) queue.Queue[byte] { return queue.NewChannel[byte](c) }},
}

// forEach runs fn once per implementation as a subtest.
func forEach(t *testing.T, fn func(t *testing.T, newQ func(int) queue.Queue[byte])) {
	t.Helper()
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			fn(t, f.new)
		})
	}
}

func TestQueue_PushPop(t *testing.T) {
	forEach(t, func(t *testing.T, newQ func(int) queue.Queue[byte]) {
		q := newQ(8)

		_, ok := q.Pop()
		assert.False(t, ok, "expected Pop() = false on empty queue")

		require.NoError(t, q.Push(42))

		got, ok := q.Pop()
		require.True(t, ok, "expected Pop() = true after Push()")
		assert.Equal(t, byte(42), got)

		_, ok = q.Pop()
		assert.False(t, ok, "expected Pop() = false after draining")
	})
}

func TestQueue_FIFO(t *testing.T) {
	forEach(t, func(t *testing.T, newQ func(int) queue.Queue[byte]) {
		q := newQ(8)

		for i := byte(0); i < 8; i++ {
			require.NoError(t, q.Push(i), "Push(%d)", i)
		}
		for i := byte(0); i < 8; i++ {
			got, ok := q.Pop()
			require.True(t, ok, "expected Pop() = true for item %d", i)
			assert.Equal(t, i, got, "FIFO violation")
		}
	})
}

func TestQueue_CapacityBound(t *testing.T) {
	forEach(t, func(t *testing.T, newQ func(int) queue.Queue[byte]) {
		q := newQ(4)

		for i := byte(1); i <= 4; i++ {
			require.NoError(t, q.Push(i))
		}
		assert.ErrorIs(t, q.Push(5), queue.ErrFull)
		assert.Equal(t, 4, q.Len(), "failed Push must not change Len")

		got, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, byte(1), got, "first pushed value must survive a rejected Push")
	})
}

func TestQueue_CapacityRecovery(t *testing.T) {
	forEach(t, func(t *testing.T, newQ func(int) queue.Queue[byte]) {
		q := newQ(2)

		require.NoError(t, q.Push(1))
		require.NoError(t, q.Push(2))
		require.ErrorIs(t, q.Push(3), queue.ErrFull)

		_, ok := q.Pop()
		require.True(t, ok)
		require.NoError(t, q.Push(3), "one Pop must free exactly one slot")
		assert.ErrorIs(t, q.Push(4), queue.ErrFull)
	})
}

func TestQueue_LenCap(t *testing.T) {
	forEach(t, func(t *testing.T, newQ func(int) queue.Queue[byte]) {
		q := newQ(8)

		assert.Equal(t, 0, q.Len())
		assert.Equal(t, 8, q.Cap())

		require.NoError(t, q.Push(1))
		require.NoError(t, q.Push(2))
		assert.Equal(t, 2, q.Len())
		assert.Equal(t, 8, q.Cap())
	})
}

func TestQueue_ZeroCapacity(t *testing.T) {
	forEach(t, func(t *testing.T, newQ func(int) queue.Queue[byte]) {
		q := newQ(0)

		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, q.Push(1), queue.ErrFull)
			_, ok := q.Pop()
			assert.False(t, ok)
		}
		assert.Equal(t, 0, q.Len())
		assert.Equal(t, 0, q.Cap())
	})
}
