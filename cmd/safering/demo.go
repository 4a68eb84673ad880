package main

import (
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/safe-ring/internal/workload"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the sequential and one-writer/one-reader demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := newQueue(a.cfg.Buffer.Impl, a.cfg.Buffer.Capacity)
			if err != nil {
				return err
			}

			res, err := workload.Demo(q, a.log.Logger)
			if err != nil {
				return err
			}
			a.log.Info().
				Bytes("single_thread", res.SingleThread).
				Int("reader_popped", len(res.Read)).
				Int("left_queued", q.Len()).
				Msg("demo finished")
			return nil
		},
	}
}
