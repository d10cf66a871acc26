package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ccollicutt/tailwatch/pkg/classifier"
)

// Default values for configuration.
const (
	DefaultName           = "log_monitor"
	DefaultLogPath        = "logs/app.log"
	DefaultWindowSize     = 250
	DefaultErrorThreshold = 2
	DefaultSlowThreshold  = 1
	DefaultPollInterval   = 5 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultLogOutput      = "stderr"
)

// Environment variable names. The unprefixed names are shared with the
// service that writes the log, so both sides agree on LOG_PATH.
const (
	EnvLogPath         = "LOG_PATH"
	EnvErrorThreshold  = "ERROR_THRESHOLD"
	EnvSlowThreshold   = "SLOW_THRESHOLD"
	EnvIntervalSeconds = "INTERVAL_SECONDS"
	EnvWindowLines     = "WINDOW_LINES"
	EnvSlowMarker      = "SLOW_MARKER"
	EnvErrorMarker     = "TAILWATCH_ERROR_MARKER"
	EnvLogLevel        = "TAILWATCH_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:           DefaultName,
		LogPath:        DefaultLogPath,
		WindowSize:     DefaultWindowSize,
		ErrorThreshold: DefaultErrorThreshold,
		SlowThreshold:  DefaultSlowThreshold,
		PollInterval:   DefaultPollInterval,
		ErrorMarker:    classifier.DefaultErrorMarker,
		SlowMarker:     classifier.DefaultSlowMarker,
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: DefaultLogOutput,
		},
		Output: OutputConfig{
			Format: OutputFormatText,
			Color:  ColorAuto,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if v := os.Getenv(EnvLogPath); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv(EnvSlowMarker); v != "" {
		c.SlowMarker = v
	}
	if v := os.Getenv(EnvErrorMarker); v != "" {
		c.ErrorMarker = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{EnvErrorThreshold, &c.ErrorThreshold},
		{EnvSlowThreshold, &c.SlowThreshold},
		{EnvWindowLines, &c.WindowSize},
	}
	for _, o := range ints {
		v, ok, err := envInt(o.env)
		if err != nil {
			return err
		}
		if ok {
			*o.dst = v
		}
	}

	secs, ok, err := envInt(EnvIntervalSeconds)
	if err != nil {
		return err
	}
	if ok {
		c.PollInterval = time.Duration(secs) * time.Second
	}

	return nil
}

func envInt(name string) (int, bool, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: invalid integer %q", name, raw)
	}
	return v, true, nil
}
