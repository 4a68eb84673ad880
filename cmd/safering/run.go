package main

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/safe-ring/internal/metrics"
	"github.com/randomizedcoder/safe-ring/internal/workload"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Push distinct values from many producers and verify every consumer pop",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := newQueue(a.cfg.Buffer.Impl, a.cfg.Buffer.Capacity)
			if err != nil {
				return err
			}

			var reg *prometheus.Registry
			if a.cfg.Workload.Metrics {
				reg = prometheus.NewRegistry()
				iq, err := metrics.NewInstrumented(q, reg, a.cfg.Buffer.Impl)
				if err != nil {
					return err
				}
				q = iq
			}

			wc := workload.Config{
				Producers:   a.cfg.Workload.Producers,
				Consumers:   a.cfg.Workload.Consumers,
				PerProducer: a.cfg.Workload.PerProducer,
				Phased:      a.cfg.Workload.Phased,
			}
			r, err := workload.Run(cmd.Context(), q, wc, a.log.Logger)
			if err != nil {
				return err
			}
			if err := r.Verify(); err != nil {
				return err
			}
			if err := r.VerifyOrder(); err != nil {
				return err
			}
			a.log.Info().Int("values", len(r.Produced)).Msg("all values collected exactly once")

			if reg != nil {
				snap, err := metrics.Snapshot(reg)
				if err != nil {
					return err
				}
				names := make([]string, 0, len(snap))
				for name := range snap {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "%-28s %.0f\n", name, snap[name])
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Int("producers", 1, "number of producer goroutines")
	f.Int("consumers", 1, "number of consumer goroutines")
	f.Int("per-producer", 5, "values pushed by each producer")
	f.Bool("phased", false, "finish all producers before starting consumers")
	f.Bool("metrics", false, "print prometheus counters after the run")

	_ = a.v.BindPFlag("workload.producers", f.Lookup("producers"))
	_ = a.v.BindPFlag("workload.consumers", f.Lookup("consumers"))
	_ = a.v.BindPFlag("workload.per_producer", f.Lookup("per-producer"))
	_ = a.v.BindPFlag("workload.phased", f.Lookup("phased"))
	_ = a.v.BindPFlag("workload.metrics", f.Lookup("metrics"))

	return cmd
}
