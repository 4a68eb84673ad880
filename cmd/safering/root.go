package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/safe-ring/internal/config"
	"github.com/randomizedcoder/safe-ring/internal/logger"
	"github.com/randomizedcoder/safe-ring/internal/queue"
)

// app carries state shared by every subcommand.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "safering",
		Short:         "Bounded ring buffer shared by concurrent producers and consumers",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Path:   cfg.Logging.Path,
			}, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return a.log.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./safering.yaml if present)")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("log-path", "", "directory for rotated log files")
	pf.Int("capacity", 5, "ring buffer capacity")
	pf.String("impl", "safe", "queue implementation: safe or channel")

	// expose to the config layer via viper
	_ = a.v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("logging.path", pf.Lookup("log-path"))
	_ = a.v.BindPFlag("buffer.capacity", pf.Lookup("capacity"))
	_ = a.v.BindPFlag("buffer.impl", pf.Lookup("impl"))

	root.AddCommand(
		newDemoCmd(a),
		newRunCmd(a),
		newBenchCmd(),
	)
	return root
}

// newQueue builds the configured queue implementation.
func newQueue(impl string, capacity int) (queue.Queue[byte], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("capacity must be >= 0, got %d", capacity)
	}
	switch impl {
	case "safe", "":
		return queue.NewSafeRingBuffer[byte](capacity), nil
	case "channel":
		return queue.NewChannel[byte](capacity), nil
	default:
		return nil, fmt.Errorf("unknown queue implementation %q", impl)
	}
}
