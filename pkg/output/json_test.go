package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/tailwatch/pkg/monitor"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport(monitor.StateErrorAlert, 2, 1, 4)

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("Format() should write exactly one line, got %q", buf.String())
	}

	var parsed CycleRecord
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Event != "cycle" {
		t.Errorf("Event = %q, want cycle", parsed.Event)
	}
	if parsed.State != "error_alert" {
		t.Errorf("State = %q, want error_alert", parsed.State)
	}
	if parsed.Errors != 2 || parsed.Slow != 1 || parsed.WindowLines != 4 {
		t.Errorf("counts = %d/%d/%d", parsed.Errors, parsed.Slow, parsed.WindowLines)
	}
	if parsed.DurationMs != 1.5 {
		t.Errorf("DurationMs = %v, want 1.5", parsed.DurationMs)
	}
	if !parsed.CheckedAt.Equal(report.CheckedAt) {
		t.Errorf("CheckedAt = %v, want %v", parsed.CheckedAt, report.CheckedAt)
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(monitor.StateOK, 0, 0, 3), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Quiet mode should suppress OK reports, got %q", buf.String())
	}

	if err := f.Format(context.Background(), createTestReport(monitor.StateSlowAlert, 0, 1, 3), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"state":"slow_alert"`) {
		t.Errorf("Quiet mode should still print alerts, got %q", buf.String())
	}
}

func TestJSONFormatter_FormatBanner(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	banner := &monitor.Banner{
		Monitor:        "log_monitor",
		MonitorID:      "abc",
		LogPath:        "logs/app.log",
		PollInterval:   5 * time.Second,
		ErrorThreshold: 2,
		SlowThreshold:  1,
		WindowSize:     250,
	}

	var buf bytes.Buffer
	if err := f.FormatBanner(context.Background(), banner, &buf); err != nil {
		t.Fatalf("FormatBanner() error = %v", err)
	}

	var parsed StartRecord
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Event != "start" || parsed.IntervalSec != 5 || parsed.WindowSize != 250 {
		t.Errorf("unexpected start record: %+v", parsed)
	}
}
