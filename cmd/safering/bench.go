package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/safe-ring/internal/queue"
)

func newBenchCmd() *cobra.Command {
	var iterations, size int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time push+pop per iteration for each queue implementation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations < 1 {
				return fmt.Errorf("iterations must be >= 1, got %d", iterations)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Benchmarking bounded queues (%d iterations, size=%d)\n", iterations, size)
			fmt.Fprintln(out, "─────────────────────────────────────────────────")

			impls := []struct {
				name string
				q    queue.Queue[byte]
			}{
				{"Channel", queue.NewChannel[byte](size)},
				{"RingBuffer", queue.NewRingBuffer[byte](size)},
				{"SafeRingBuffer", queue.NewSafeRingBuffer[byte](size)},
			}

			perOp := make([]float64, len(impls))
			fmt.Fprintf(out, "\nResults (push + pop per iteration):\n")
			for i, impl := range impls {
				start := time.Now()
				for n := 0; n < iterations; n++ {
					_ = impl.q.Push(byte(n))
					impl.q.Pop()
				}
				dur := time.Since(start)
				perOp[i] = float64(dur.Nanoseconds()) / float64(iterations)
				fmt.Fprintf(out, "  %-15s %v (%.2f ns/op)\n", impl.name+":", dur, perOp[i])
			}

			// Cost of the lock over the bare ring
			fmt.Fprintf(out, "\n  Lock overhead:  %.2f ns/op\n", perOp[2]-perOp[1])

			fmt.Fprintf(out, "\nThroughput (theoretical max):\n")
			for i, impl := range impls {
				fmt.Fprintf(out, "  %-15s %.2f M ops/sec\n", impl.name+":", 1000/perOp[i])
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10_000_000, "number of iterations")
	cmd.Flags().IntVar(&size, "size", 1024, "queue size")
	return cmd
}
