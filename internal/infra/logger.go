package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so packages outside infra can accept a logger
// without importing zerolog directly.
type Logger = zerolog.Logger

// NewLogger builds the process logger. Development gets debug level and
// human readable console output; every other environment logs JSON at info.
func NewLogger(cfg *Config) Logger {
	return newLogger(os.Stdout, cfg.IsDevelopment())
}

func newLogger(out io.Writer, development bool) Logger {
	level := zerolog.InfoLevel
	if development {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "promptglot").
		Logger()
}

// NewCLILogger logs to stderr so command output on stdout stays parseable.
func NewCLILogger(verbose bool) Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// DiscardLogger is used by components constructed without a logger.
func DiscardLogger() *Logger {
	l := zerolog.New(io.Discard)
	return &l
}
