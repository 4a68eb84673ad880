// Package workload drives a queue.Queue[byte] with concurrent producer
// and consumer goroutines and checks that every value pushed is popped
// exactly once.
package workload

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/safe-ring/internal/cancel"
	"github.com/randomizedcoder/safe-ring/internal/queue"
)

// MaxValues is the number of distinct byte values a run can produce.
const MaxValues = 256

var (
	// ErrInvalidConfig is returned by Validate and Run for unusable settings.
	ErrInvalidConfig = errors.New("workload: invalid config")

	// ErrConservation is returned by Report checks when values were lost,
	// duplicated, corrupted or reordered.
	ErrConservation = errors.New("workload: conservation violated")
)

// Config describes one producer/consumer run.
type Config struct {
	Producers   int
	Consumers   int
	PerProducer int

	// Phased runs every producer to completion before any consumer
	// starts. The queue must then hold the whole run.
	Phased bool
}

// Total returns the number of values the run pushes and collects.
func (c Config) Total() int {
	return c.Producers * c.PerProducer
}

// Validate checks that the run is well formed and every value is unique.
func (c Config) Validate() error {
	switch {
	case c.Producers < 1:
		return fmt.Errorf("%w: producers must be >= 1, got %d", ErrInvalidConfig, c.Producers)
	case c.Consumers < 1:
		return fmt.Errorf("%w: consumers must be >= 1, got %d", ErrInvalidConfig, c.Consumers)
	case c.PerProducer < 1:
		return fmt.Errorf("%w: per-producer must be >= 1, got %d", ErrInvalidConfig, c.PerProducer)
	case c.Total() > MaxValues:
		return fmt.Errorf("%w: %d values do not fit in %d distinct bytes", ErrInvalidConfig, c.Total(), MaxValues)
	}
	return nil
}

// Value returns the j-th value pushed by producer p.
func (c Config) Value(p, j int) byte {
	return byte(p*c.PerProducer + j)
}

// Run pushes cfg.Total() distinct values through q and collects them.
//
// Producers retry a full queue after yielding; consumers poll until the
// shared collected count reaches the total. Cancelling ctx stops every
// worker and Run returns the context error.
func Run(ctx context.Context, q queue.Queue[byte], cfg Config, log zerolog.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Phased && q.Cap() < cfg.Total() {
		return nil, fmt.Errorf("%w: phased run of %d values needs capacity >= %d, got %d",
			ErrInvalidConfig, cfg.Total(), cfg.Total(), q.Cap())
	}

	r := &Report{
		PerProducer: cfg.PerProducer,
		PerConsumer: make([][]byte, cfg.Consumers),
	}
	for p := 0; p < cfg.Producers; p++ {
		for j := 0; j < cfg.PerProducer; j++ {
			r.Produced = append(r.Produced, cfg.Value(p, j))
		}
	}

	var (
		total       = int64(cfg.Total())
		collected   atomic.Int64
		fullRetries atomic.Uint64
		emptyPolls  atomic.Uint64
	)

	log.Info().
		Int("producers", cfg.Producers).
		Int("consumers", cfg.Consumers).
		Int("per_producer", cfg.PerProducer).
		Int("capacity", q.Cap()).
		Bool("phased", cfg.Phased).
		Msg("workload starting")
	if q.Cap() == 0 {
		log.Warn().Msg("queue has zero capacity: producers can never push, run ends only on cancellation")
	}

	// Workers poll stop on every Full retry and empty poll; it flips
	// once the group context is done.
	g, gctx := errgroup.WithContext(ctx)
	stop := cancel.Watch(gctx)

	produce := func(p int) func() error {
		return func() error {
			var retries uint64
			for j := 0; j < cfg.PerProducer; j++ {
				v := cfg.Value(p, j)
				for {
					if stop.Done() {
						return gctx.Err()
					}
					err := q.Push(v)
					if err == nil {
						break
					}
					if !errors.Is(err, queue.ErrFull) {
						return fmt.Errorf("producer %d: %w", p, err)
					}
					retries++
					runtime.Gosched()
				}
			}
			fullRetries.Add(retries)
			log.Debug().Int("producer", p).Uint64("full_retries", retries).Msg("producer done")
			return nil
		}
	}

	consume := func(c int) func() error {
		return func() error {
			var polls uint64
			for collected.Load() < total {
				v, ok := q.Pop()
				if !ok {
					polls++
					if stop.Done() {
						return gctx.Err()
					}
					runtime.Gosched()
					continue
				}
				collected.Add(1)
				r.PerConsumer[c] = append(r.PerConsumer[c], v)
			}
			emptyPolls.Add(polls)
			log.Debug().Int("consumer", c).Int("popped", len(r.PerConsumer[c])).Msg("consumer done")
			return nil
		}
	}

	start := time.Now()

	for p := 0; p < cfg.Producers; p++ {
		g.Go(produce(p))
	}
	if cfg.Phased {
		if err := g.Wait(); err != nil {
			return nil, err
		}
		g, gctx = errgroup.WithContext(ctx)
		stop = cancel.Watch(gctx)
	}
	for c := 0; c < cfg.Consumers; c++ {
		g.Go(consume(c))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.Elapsed = time.Since(start)
	r.FullRetries = fullRetries.Load()
	r.EmptyPolls = emptyPolls.Load()

	log.Info().
		Int("collected", int(collected.Load())).
		Uint64("full_retries", r.FullRetries).
		Uint64("empty_polls", r.EmptyPolls).
		Dur("elapsed", r.Elapsed).
		Msg("workload finished")

	return r, nil
}
