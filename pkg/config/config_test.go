package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/tailwatch/pkg/classifier"
)

// clearEnv blanks every variable the loader reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvLogPath, EnvErrorThreshold, EnvSlowThreshold, EnvIntervalSeconds,
		EnvWindowLines, EnvSlowMarker, EnvErrorMarker, EnvLogLevel,
	} {
		t.Setenv(name, "")
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogPath != "logs/app.log" {
		t.Errorf("LogPath = %q, want logs/app.log", cfg.LogPath)
	}
	if cfg.ErrorThreshold != 2 {
		t.Errorf("ErrorThreshold = %d, want 2", cfg.ErrorThreshold)
	}
	if cfg.SlowThreshold != 1 {
		t.Errorf("SlowThreshold = %d, want 1", cfg.SlowThreshold)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", cfg.PollInterval)
	}
	if cfg.WindowSize != 250 {
		t.Errorf("WindowSize = %d, want 250", cfg.WindowSize)
	}
	if cfg.SlowMarker != "Simulated slow GMS" {
		t.Errorf("SlowMarker = %q, want %q", cfg.SlowMarker, "Simulated slow GMS")
	}
	if cfg.ErrorMarker != classifier.DefaultErrorMarker {
		t.Errorf("ErrorMarker = %q, want %q", cfg.ErrorMarker, classifier.DefaultErrorMarker)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	clearEnv(t)
	content := `
name: players-api
log_path: /var/log/app.log
window_size: 100
error_threshold: 5
slow_threshold: 0
poll_interval: 30s
slow_marker: "took longer than"
logging:
  level: debug
  format: json
output:
  format: json
  quiet: true
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Name != "players-api" {
		t.Errorf("Name = %q, want players-api", cfg.Name)
	}
	if cfg.LogPath != "/var/log/app.log" {
		t.Errorf("LogPath = %q", cfg.LogPath)
	}
	if cfg.WindowSize != 100 {
		t.Errorf("WindowSize = %d, want 100", cfg.WindowSize)
	}
	if cfg.ErrorThreshold != 5 {
		t.Errorf("ErrorThreshold = %d, want 5", cfg.ErrorThreshold)
	}
	if cfg.SlowThreshold != 0 {
		t.Errorf("SlowThreshold = %d, want 0", cfg.SlowThreshold)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval)
	}
	if cfg.SlowMarker != "took longer than" {
		t.Errorf("SlowMarker = %q", cfg.SlowMarker)
	}
	if cfg.ErrorMarker != classifier.DefaultErrorMarker {
		t.Errorf("ErrorMarker should keep default, got %q", cfg.ErrorMarker)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Logging.Output != DefaultLogOutput {
		t.Errorf("Logging.Output = %q, want default", cfg.Logging.Output)
	}
	if cfg.Output.Format != OutputFormatJSON || !cfg.Output.Quiet {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Output.Color != ColorAuto {
		t.Errorf("Output.Color = %q, want auto", cfg.Output.Color)
	}
}

func TestLoad_PartialYAMLKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeTempFile(t, "config.yaml", "error_threshold: 3\n")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ErrorThreshold != 3 {
		t.Errorf("ErrorThreshold = %d, want 3", cfg.ErrorThreshold)
	}
	if cfg.WindowSize != DefaultWindowSize || cfg.PollInterval != DefaultPollInterval {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoad_ValidTOML(t *testing.T) {
	clearEnv(t)
	content := `
log_path = "/srv/app.log"
window_size = 50
error_threshold = 1
poll_interval = "250ms"

[output]
color = "never"
`
	path := writeTempFile(t, "config.toml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogPath != "/srv/app.log" {
		t.Errorf("LogPath = %q", cfg.LogPath)
	}
	if cfg.WindowSize != 50 {
		t.Errorf("WindowSize = %d, want 50", cfg.WindowSize)
	}
	if cfg.ErrorThreshold != 1 {
		t.Errorf("ErrorThreshold = %d, want 1", cfg.ErrorThreshold)
	}
	if cfg.SlowThreshold != DefaultSlowThreshold {
		t.Errorf("SlowThreshold = %d, want default", cfg.SlowThreshold)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v, want 250ms", cfg.PollInterval)
	}
	if cfg.Output.Color != ColorNever {
		t.Errorf("Output.Color = %q, want never", cfg.Output.Color)
	}
	if cfg.SlowMarker != classifier.DefaultSlowMarker {
		t.Errorf("SlowMarker = %q, want default", cfg.SlowMarker)
	}
}

func TestLoad_TOMLBadDuration(t *testing.T) {
	clearEnv(t)
	path := writeTempFile(t, "config.toml", `poll_interval = "soon"`)

	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load() expected error for bad poll_interval")
	}
}

func TestLoad_YAMLIntegerDurationRejected(t *testing.T) {
	clearEnv(t)
	path := writeTempFile(t, "config.yaml", "poll_interval: 5\n")

	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load() expected error for unitless poll_interval")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoadOrDefault_NoPath(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadOrDefault(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.LogPath != DefaultLogPath {
		t.Errorf("LogPath = %q, want default", cfg.LogPath)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogPath, "/tmp/other.log")
	t.Setenv(EnvErrorThreshold, "7")
	t.Setenv(EnvSlowThreshold, "0")
	t.Setenv(EnvIntervalSeconds, "2")
	t.Setenv(EnvWindowLines, "10")
	t.Setenv(EnvSlowMarker, "SLOW")
	t.Setenv(EnvErrorMarker, "[E]")
	t.Setenv(EnvLogLevel, "warn")

	path := writeTempFile(t, "config.yaml", "log_path: /from/file.log\nerror_threshold: 1\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogPath != "/tmp/other.log" {
		t.Errorf("LogPath = %q, env should win over file", cfg.LogPath)
	}
	if cfg.ErrorThreshold != 7 {
		t.Errorf("ErrorThreshold = %d, want 7", cfg.ErrorThreshold)
	}
	if cfg.SlowThreshold != 0 {
		t.Errorf("SlowThreshold = %d, want 0", cfg.SlowThreshold)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if cfg.WindowSize != 10 {
		t.Errorf("WindowSize = %d, want 10", cfg.WindowSize)
	}
	if cfg.SlowMarker != "SLOW" || cfg.ErrorMarker != "[E]" {
		t.Errorf("markers = %q / %q", cfg.ErrorMarker, cfg.SlowMarker)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestEnvironmentOverrides_InvalidInteger(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvWindowLines, "lots")

	_, err := LoadOrDefault(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for non-integer WINDOW_LINES")
	}
	if !strings.Contains(err.Error(), EnvWindowLines) {
		t.Errorf("error should name the variable, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero thresholds allowed", func(c *Config) { c.ErrorThreshold, c.SlowThreshold = 0, 0 }, false},
		{"empty log path", func(c *Config) { c.LogPath = "  " }, true},
		{"zero window", func(c *Config) { c.WindowSize = 0 }, true},
		{"negative window", func(c *Config) { c.WindowSize = -1 }, true},
		{"negative error threshold", func(c *Config) { c.ErrorThreshold = -1 }, true},
		{"negative slow threshold", func(c *Config) { c.SlowThreshold = -1 }, true},
		{"zero interval", func(c *Config) { c.PollInterval = 0 }, true},
		{"empty error marker", func(c *Config) { c.ErrorMarker = "" }, true},
		{"empty slow marker", func(c *Config) { c.SlowMarker = "" }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, true},
		{"bad color mode", func(c *Config) { c.Output.Color = "rainbow" }, true},
		{"quiet and verbose", func(c *Config) { c.Output.Quiet, c.Output.Verbose = true, true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error should wrap ErrInvalid: %v", err)
			}
		})
	}
}

func TestValidate_FillsEmptyOptionalFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = ""
	cfg.Logging = LoggingConfig{}
	cfg.Output = OutputConfig{}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Name != DefaultName {
		t.Errorf("Name = %q, want default", cfg.Name)
	}
	if cfg.Logging.Level != DefaultLogLevel || cfg.Logging.Format != DefaultLogFormat || cfg.Logging.Output != DefaultLogOutput {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Output.Format != OutputFormatText || cfg.Output.Color != ColorAuto {
		t.Errorf("Output = %+v", cfg.Output)
	}
}
