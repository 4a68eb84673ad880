// Package logger configures zerolog for the safering command.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zerolog with an optional rotating log file.
type Logger struct {
	zerolog.Logger
	rotator *lumberjack.Logger
}

// Config holds logger configuration.
type Config struct {
	Level      string
	Format     string // "console" or "json"
	Path       string // directory for log files, empty disables file output
	MaxSizeMB  int    // default: 10
	MaxBackups int    // default: 5
	MaxAgeDays int    // default: 30
	Compress   bool
}

// New creates a logger writing to out and, if cfg.Path is set, to a
// rotated safering.log in that directory.
func New(cfg Config, out io.Writer) *Logger {
	var console io.Writer = out
	if cfg.Format != "json" {
		console = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	output := console
	var rotator *lumberjack.Logger

	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o755); err == nil {
			rotator = &lumberjack.Logger{
				Filename:   filepath.Join(cfg.Path, "safering.log"),
				MaxSize:    orDefault(cfg.MaxSizeMB, 10),
				MaxBackups: orDefault(cfg.MaxBackups, 5),
				MaxAge:     orDefault(cfg.MaxAgeDays, 30),
				Compress:   cfg.Compress,
				LocalTime:  true,
			}
			output = io.MultiWriter(console, rotator)
		}
	}

	l := zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: l, rotator: rotator}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l.rotator != nil {
		return l.rotator.Close()
	}
	return nil
}

// ParseLevel converts a level name to zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
