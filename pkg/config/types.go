// Package config provides configuration loading and validation for tailwatch.
package config

import "time"

// Config is the root configuration structure. It is loaded once at startup,
// validated, and treated as read-only afterwards.
type Config struct {
	// Name identifies the monitor in report lines.
	Name string `yaml:"name"`

	// LogPath is the file to tail.
	LogPath string `yaml:"log_path"`

	// WindowSize is the maximum number of trailing lines considered per cycle.
	WindowSize int `yaml:"window_size"`

	// ErrorThreshold is the minimum error-line count that raises an error alert.
	ErrorThreshold int `yaml:"error_threshold"`

	// SlowThreshold is the minimum slow-line count that raises a slow alert.
	SlowThreshold int `yaml:"slow_threshold"`

	// PollInterval is the pause between cycles.
	PollInterval time.Duration `yaml:"poll_interval"`

	// ErrorMarker is the substring identifying an error line.
	ErrorMarker string `yaml:"error_marker"`

	// SlowMarker is the substring identifying a slow-response line.
	SlowMarker string `yaml:"slow_marker"`

	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig controls the operational logger (not the report stream).
type LoggingConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is "console" or "json".
	Format string `yaml:"format"`

	// Output is "stderr", "stdout" or a file path.
	Output string `yaml:"output"`
}

// OutputFormat selects the report formatter.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// ColorMode controls styling of text reports.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// OutputConfig controls how cycle reports are written.
type OutputConfig struct {
	Format OutputFormat `yaml:"format"`
	Color  ColorMode    `yaml:"color"`

	// Quiet suppresses OK reports and the startup banner.
	Quiet bool `yaml:"quiet"`

	// Verbose adds a detail line to each text report.
	Verbose bool `yaml:"verbose"`
}
