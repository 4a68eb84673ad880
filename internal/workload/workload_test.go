package workload_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/safe-ring/internal/queue"
	"github.com/randomizedcoder/safe-ring/internal/workload"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  workload.Config
		ok   bool
	}{
		{"five by ten", workload.Config{Producers: 5, Consumers: 5, PerProducer: 10}, true},
		{"all bytes", workload.Config{Producers: 16, Consumers: 1, PerProducer: 16}, true},
		{"too many values", workload.Config{Producers: 16, Consumers: 1, PerProducer: 17}, false},
		{"no producers", workload.Config{Producers: 0, Consumers: 1, PerProducer: 1}, false},
		{"no consumers", workload.Config{Producers: 1, Consumers: 0, PerProducer: 1}, false},
		{"no values", workload.Config{Producers: 1, Consumers: 1, PerProducer: 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, workload.ErrInvalidConfig)
			}
		})
	}
}

// TestRun_Phased pushes 5 producers x 10
// values into a capacity-100 buffer with no failed pushes, then 5 consumers.
func TestRun_Phased(t *testing.T) {
	q := queue.NewSafeRingBuffer[byte](100)
	cfg := workload.Config{Producers: 5, Consumers: 5, PerProducer: 10, Phased: true}

	r, err := workload.Run(context.Background(), q, cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.Len(t, r.Collected(), 50)
	assert.Zero(t, r.FullRetries, "capacity 100 must never be full")
	require.NoError(t, r.Verify())
	require.NoError(t, r.VerifyOrder())
	assert.Equal(t, 0, q.Len())
}

func TestRun_PhasedNeedsCapacity(t *testing.T) {
	q := queue.NewSafeRingBuffer[byte](10)
	cfg := workload.Config{Producers: 5, Consumers: 1, PerProducer: 10, Phased: true}

	_, err := workload.Run(context.Background(), q, cfg, zerolog.Nop())
	assert.ErrorIs(t, err, workload.ErrInvalidConfig)
}

func TestRun_Concurrent(t *testing.T) {
	for _, capacity := range []int{1, 3, 64} {
		for _, impl := range []struct {
			name string
			q    queue.Queue[byte]
		}{
			{"safe", queue.NewSafeRingBuffer[byte](capacity)},
			{"channel", queue.NewChannel[byte](capacity)},
		} {
			t.Run(fmt.Sprintf("%s/cap%d", impl.name, capacity), func(t *testing.T) {
				cfg := workload.Config{Producers: 8, Consumers: 4, PerProducer: 32}

				r, err := workload.Run(context.Background(), impl.q, cfg, zerolog.Nop())
				require.NoError(t, err)
				require.NoError(t, r.Verify())
				require.NoError(t, r.VerifyOrder())
			})
		}
	}
}

// TestRun_Cancel stops a run whose producers can never finish because
// the buffer has zero capacity.
func TestRun_Cancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	q := queue.NewSafeRingBuffer[byte](0)
	cfg := workload.Config{Producers: 2, Consumers: 2, PerProducer: 4}

	var logs bytes.Buffer
	_, err := workload.Run(ctx, q, cfg, zerolog.New(&logs))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "zero capacity")
}

// TestRun_CancelMidRun cancels while producers and consumers are both
// spinning on a small queue and checks Run returns promptly.
func TestRun_CancelMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// The producer is stuck behind a zero-capacity channel and the
	// consumers keep polling it empty.
	q := queue.NewChannel[byte](0)
	cfg := workload.Config{Producers: 1, Consumers: 3, PerProducer: 1}

	errc := make(chan error, 1)
	go func() {
		_, err := workload.Run(ctx, q, cfg, zerolog.Nop())
		errc <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestReport_Verify(t *testing.T) {
	base := func() *workload.Report {
		return &workload.Report{
			Produced:    []byte{0, 1, 2, 3},
			PerConsumer: [][]byte{{0, 2}, {1, 3}},
			PerProducer: 2,
		}
	}

	require.NoError(t, base().Verify())
	require.NoError(t, base().VerifyOrder())

	lost := base()
	lost.PerConsumer[1] = []byte{1}
	assert.ErrorIs(t, lost.Verify(), workload.ErrConservation)

	dup := base()
	dup.PerConsumer[1] = []byte{1, 1}
	assert.ErrorIs(t, dup.Verify(), workload.ErrConservation)

	reordered := base()
	reordered.PerConsumer = [][]byte{{1, 0, 2, 3}}
	assert.NoError(t, reordered.Verify())
	assert.ErrorIs(t, reordered.VerifyOrder(), workload.ErrConservation)
}

func TestDemo(t *testing.T) {
	q := queue.NewSafeRingBuffer[byte](5)

	res, err := workload.Demo(q, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30}, res.SingleThread)

	// The reader may outrun the writer; whatever it missed is still queued
	// in order behind what it read.
	rest := []byte{}
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		rest = append(rest, v)
	}
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, append(append([]byte{}, res.Read...), rest...))
}

func TestDemo_TooSmall(t *testing.T) {
	_, err := workload.Demo(queue.NewSafeRingBuffer[byte](1), zerolog.Nop())
	assert.ErrorIs(t, err, queue.ErrFull)
}
