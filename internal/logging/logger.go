// Package logging builds the zerolog logger used for operational messages.
//
// Cycle reports are not logged here; they go to the report stream. This
// logger carries startup, shutdown and degraded-cycle warnings, and writes to
// stderr by default so the two never interleave on stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/tailwatch/pkg/config"
)

// New creates a logger from cfg. The returned closer releases the log file
// when Output names one; for stdout and stderr it is a no-op.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	var (
		writer io.Writer
		closer io.Closer = nopCloser{}
	)

	switch cfg.Output {
	case "stderr", "":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log output: %w", err)
		}
		writer = f
		closer = f
	}

	return NewWithWriter(cfg, writer), closer, nil
}

// NewWithWriter creates a logger that writes to w.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" || cfg.Format == "" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
