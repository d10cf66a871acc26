package output

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/ccollicutt/tailwatch/pkg/monitor"
)

// JSONFormatter formats reports as newline-delimited JSON, one object per cycle.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// CycleRecord is the JSON shape of a cycle report.
type CycleRecord struct {
	Event          string    `json:"event"`
	Monitor        string    `json:"monitor"`
	MonitorID      string    `json:"monitor_id"`
	State          string    `json:"state"`
	Errors         int       `json:"errors"`
	Slow           int       `json:"slow"`
	WindowLines    int       `json:"window_lines"`
	WindowSize     int       `json:"window_size"`
	ErrorThreshold int       `json:"error_threshold"`
	SlowThreshold  int       `json:"slow_threshold"`
	LogPath        string    `json:"log_path"`
	CheckedAt      time.Time `json:"checked_at"`
	DurationMs     float64   `json:"duration_ms"`
}

// StartRecord is the JSON shape of the startup banner.
type StartRecord struct {
	Event          string  `json:"event"`
	Monitor        string  `json:"monitor"`
	MonitorID      string  `json:"monitor_id"`
	LogPath        string  `json:"log_path"`
	IntervalSec    float64 `json:"interval_seconds"`
	ErrorThreshold int     `json:"error_threshold"`
	SlowThreshold  int     `json:"slow_threshold"`
	WindowSize     int     `json:"window_size"`
}

// Format renders the report as a single JSON line.
func (f *JSONFormatter) Format(ctx context.Context, report *monitor.Report, w io.Writer) error {
	if f.opts.Quiet && !report.IsAlert() {
		return nil
	}

	return json.NewEncoder(w).Encode(CycleRecord{
		Event:          "cycle",
		Monitor:        report.Monitor,
		MonitorID:      report.MonitorID,
		State:          string(report.State),
		Errors:         report.Errors,
		Slow:           report.Slow,
		WindowLines:    report.WindowLines,
		WindowSize:     report.WindowSize,
		ErrorThreshold: report.ErrorThreshold,
		SlowThreshold:  report.SlowThreshold,
		LogPath:        report.LogPath,
		CheckedAt:      report.CheckedAt,
		DurationMs:     float64(report.Duration) / float64(time.Millisecond),
	})
}

// FormatBanner renders the startup event as a single JSON line.
func (f *JSONFormatter) FormatBanner(ctx context.Context, banner *monitor.Banner, w io.Writer) error {
	if f.opts.Quiet {
		return nil
	}

	return json.NewEncoder(w).Encode(StartRecord{
		Event:          "start",
		Monitor:        banner.Monitor,
		MonitorID:      banner.MonitorID,
		LogPath:        banner.LogPath,
		IntervalSec:    banner.PollInterval.Seconds(),
		ErrorThreshold: banner.ErrorThreshold,
		SlowThreshold:  banner.SlowThreshold,
		WindowSize:     banner.WindowSize,
	})
}
