// Package monitor runs the recurring read → classify → decide → report cycle
// over the tail of a log file.
package monitor

import (
	"context"
	"io"
	"time"
)

// State is the outcome of one cycle. It is recomputed every cycle and carries
// no memory of earlier cycles.
type State string

const (
	StateOK         State = "ok"
	StateErrorAlert State = "error_alert"
	StateSlowAlert  State = "slow_alert"
)

// IsAlert returns true for either alert state.
func (s State) IsAlert() bool {
	return s == StateErrorAlert || s == StateSlowAlert
}

// Report describes a single completed cycle.
type Report struct {
	// Monitor is the configured monitor name.
	Monitor string

	// MonitorID identifies the monitor instance that produced the report.
	MonitorID string

	// State is the decision for this cycle.
	State State

	// Errors and Slow are the marker counts within the window.
	Errors int
	Slow   int

	// WindowLines is the number of lines actually captured (at most WindowSize).
	WindowLines int

	// WindowSize is the configured maximum window.
	WindowSize int

	ErrorThreshold int
	SlowThreshold  int

	// LogPath is the file that was read.
	LogPath string

	// CheckedAt is when the cycle started.
	CheckedAt time.Time

	// Duration is how long read and classification took.
	Duration time.Duration
}

// IsAlert returns true if the cycle raised an alert.
func (r *Report) IsAlert() bool {
	return r.State.IsAlert()
}

// Banner describes a monitor at startup.
type Banner struct {
	Monitor        string
	MonitorID      string
	LogPath        string
	PollInterval   time.Duration
	ErrorThreshold int
	SlowThreshold  int
	WindowSize     int
}

// Formatter writes reports to the output sink.
// output.TextFormatter and output.JSONFormatter implement it.
type Formatter interface {
	Format(ctx context.Context, report *Report, w io.Writer) error
	FormatBanner(ctx context.Context, banner *Banner, w io.Writer) error
}

// ReadFunc returns the last n lines of the file at path.
type ReadFunc func(path string, n int) ([]string, error)
