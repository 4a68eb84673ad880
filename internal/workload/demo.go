package workload

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/randomizedcoder/safe-ring/internal/queue"
)

// DemoResult records what the demo popped.
type DemoResult struct {
	// SingleThread holds the three values popped in the sequential part.
	SingleThread []byte

	// Read holds whatever the reader goroutine managed to pop; it may be
	// fewer than five values if the reader outran the writer.
	Read []byte
}

// Demo exercises q with a short sequential push/pop sequence, then one
// writer and one reader goroutine sharing q concurrently. q should hold
// at least five values.
func Demo(q queue.Queue[byte], log zerolog.Logger) (*DemoResult, error) {
	res := &DemoResult{}

	log.Info().Msg("single goroutine demo")
	pop := func() {
		v, ok := q.Pop()
		log.Info().Bool("ok", ok).Uint8("value", v).Msg("popped")
		if ok {
			res.SingleThread = append(res.SingleThread, v)
		}
	}
	if err := q.Push(10); err != nil {
		return nil, fmt.Errorf("demo push: %w", err)
	}
	if err := q.Push(20); err != nil {
		return nil, fmt.Errorf("demo push: %w", err)
	}
	pop() // 10
	if err := q.Push(30); err != nil {
		return nil, fmt.Errorf("demo push: %w", err)
	}
	pop() // 20
	pop() // 30

	log.Info().Msg("concurrent demo")
	var (
		wg       sync.WaitGroup
		writeErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := byte(1); i <= 5; i++ {
			if err := q.Push(i); err != nil {
				writeErr = fmt.Errorf("writer push %d: %w", i, err)
				return
			}
			log.Info().Uint8("value", i).Msg("writer pushed")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			if v, ok := q.Pop(); ok {
				log.Info().Uint8("value", v).Msg("reader popped")
				res.Read = append(res.Read, v)
			}
		}
	}()
	wg.Wait()

	if writeErr != nil {
		return nil, writeErr
	}
	return res, nil
}
