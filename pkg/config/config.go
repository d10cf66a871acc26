package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Load reads and validates a configuration file. Files ending in .toml are
// parsed as TOML, everything else as YAML. Environment overrides are applied
// after the file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if isTOML(path) {
		err = decodeTOML(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadOrDefault loads path when it is set, otherwise starts from defaults.
// Environment overrides and validation apply either way.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if strings.TrimSpace(path) != "" {
		return Load(ctx, path)
	}
	return finish(DefaultConfig())
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.LogPath) == "" {
		return invalid("log_path: is required")
	}
	if cfg.WindowSize <= 0 {
		return invalid("window_size: must be > 0, got %d", cfg.WindowSize)
	}
	if cfg.ErrorThreshold < 0 {
		return invalid("error_threshold: must be >= 0, got %d", cfg.ErrorThreshold)
	}
	if cfg.SlowThreshold < 0 {
		return invalid("slow_threshold: must be >= 0, got %d", cfg.SlowThreshold)
	}
	if cfg.PollInterval <= 0 {
		return invalid("poll_interval: must be > 0, got %s", cfg.PollInterval)
	}
	if cfg.ErrorMarker == "" {
		return invalid("error_marker: must not be empty")
	}
	if cfg.SlowMarker == "" {
		return invalid("slow_marker: must not be empty")
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	return nil
}

func validateLogging(lc *LoggingConfig) error {
	if lc.Level == "" {
		lc.Level = DefaultLogLevel
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(lc.Level)); err != nil {
		return invalid("level: unknown level %q", lc.Level)
	}

	switch lc.Format {
	case "":
		lc.Format = DefaultLogFormat
	case "console", "json":
		// Valid
	default:
		return invalid("format: invalid format %q (must be console or json)", lc.Format)
	}

	if lc.Output == "" {
		lc.Output = DefaultLogOutput
	}
	return nil
}

func validateOutput(oc *OutputConfig) error {
	switch oc.Format {
	case "":
		oc.Format = OutputFormatText
	case OutputFormatText, OutputFormatJSON:
		// Valid
	default:
		return invalid("format: unknown output format %q (use text or json)", oc.Format)
	}

	switch oc.Color {
	case "":
		oc.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
		// Valid
	default:
		return invalid("color: invalid mode %q (must be auto, always, or never)", oc.Color)
	}

	if oc.Quiet && oc.Verbose {
		return invalid("quiet and verbose are mutually exclusive")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// tomlFile mirrors Config for TOML input; durations are written as strings.
type tomlFile struct {
	Name           string `toml:"name"`
	LogPath        string `toml:"log_path"`
	WindowSize     int    `toml:"window_size"`
	ErrorThreshold int    `toml:"error_threshold"`
	SlowThreshold  int    `toml:"slow_threshold"`
	PollInterval   string `toml:"poll_interval"`
	ErrorMarker    string `toml:"error_marker"`
	SlowMarker     string `toml:"slow_marker"`
	Logging        struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
		Output string `toml:"output"`
	} `toml:"logging"`
	Output struct {
		Format  string `toml:"format"`
		Color   string `toml:"color"`
		Quiet   bool   `toml:"quiet"`
		Verbose bool   `toml:"verbose"`
	} `toml:"output"`
}

func decodeTOML(data []byte, cfg *Config) error {
	raw := tomlFile{
		Name:           cfg.Name,
		LogPath:        cfg.LogPath,
		WindowSize:     cfg.WindowSize,
		ErrorThreshold: cfg.ErrorThreshold,
		SlowThreshold:  cfg.SlowThreshold,
		PollInterval:   cfg.PollInterval.String(),
		ErrorMarker:    cfg.ErrorMarker,
		SlowMarker:     cfg.SlowMarker,
	}
	raw.Logging.Level = cfg.Logging.Level
	raw.Logging.Format = cfg.Logging.Format
	raw.Logging.Output = cfg.Logging.Output
	raw.Output.Format = string(cfg.Output.Format)
	raw.Output.Color = string(cfg.Output.Color)
	raw.Output.Quiet = cfg.Output.Quiet
	raw.Output.Verbose = cfg.Output.Verbose

	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}

	interval, err := time.ParseDuration(strings.TrimSpace(raw.PollInterval))
	if err != nil {
		return fmt.Errorf("poll_interval: %w", err)
	}

	cfg.Name = raw.Name
	cfg.LogPath = raw.LogPath
	cfg.WindowSize = raw.WindowSize
	cfg.ErrorThreshold = raw.ErrorThreshold
	cfg.SlowThreshold = raw.SlowThreshold
	cfg.PollInterval = interval
	cfg.ErrorMarker = raw.ErrorMarker
	cfg.SlowMarker = raw.SlowMarker
	cfg.Logging = LoggingConfig{
		Level:  raw.Logging.Level,
		Format: raw.Logging.Format,
		Output: raw.Logging.Output,
	}
	cfg.Output = OutputConfig{
		Format:  OutputFormat(raw.Output.Format),
		Color:   ColorMode(raw.Output.Color),
		Quiet:   raw.Output.Quiet,
		Verbose: raw.Output.Verbose,
	}
	return nil
}
