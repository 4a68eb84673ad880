// Package config loads safering command settings from file, environment
// and flags through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SAFERING_BUFFER_CAPACITY.
const EnvPrefix = "SAFERING"

// Config holds all command configuration.
type Config struct {
	Buffer   BufferConfig   `mapstructure:"buffer"`
	Workload WorkloadConfig `mapstructure:"workload"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// BufferConfig selects the queue under test.
type BufferConfig struct {
	Capacity int    `mapstructure:"capacity"`
	Impl     string `mapstructure:"impl"` // "safe" or "channel"
}

// WorkloadConfig describes the producer/consumer run.
type WorkloadConfig struct {
	Producers   int  `mapstructure:"producers"`
	Consumers   int  `mapstructure:"consumers"`
	PerProducer int  `mapstructure:"per_producer"`
	Phased      bool `mapstructure:"phased"`
	Metrics     bool `mapstructure:"metrics"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Buffer: BufferConfig{
			Capacity: 5,
			Impl:     "safe",
		},
		Workload: WorkloadConfig{
			Producers:   1,
			Consumers:   1,
			PerProducer: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// SetDefaults registers Default() values on v so env and flag bindings
// have something to override.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("buffer.capacity", d.Buffer.Capacity)
	v.SetDefault("buffer.impl", d.Buffer.Impl)
	v.SetDefault("workload.producers", d.Workload.Producers)
	v.SetDefault("workload.consumers", d.Workload.Consumers)
	v.SetDefault("workload.per_producer", d.Workload.PerProducer)
	v.SetDefault("workload.phased", d.Workload.Phased)
	v.SetDefault("workload.metrics", d.Workload.Metrics)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", d.Logging.Path)
}

// Load reads configuration from an optional file and SAFERING_* env vars.
//
// An empty path searches for safering.yaml in the working directory; a
// missing file is not an error in that case.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("safering")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
