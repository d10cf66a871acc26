package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ccollicutt/tailwatch/pkg/classifier"
	"github.com/ccollicutt/tailwatch/pkg/config"
	"github.com/ccollicutt/tailwatch/pkg/tail"
)

// Monitor evaluates the tail of one log file on a fixed interval.
// A Monitor runs on a single goroutine; cycles never overlap.
type Monitor struct {
	cfg        *config.Config
	classifier *classifier.Classifier
	formatter  Formatter
	out        io.Writer
	id         string

	// Options
	log       zerolog.Logger
	read      ReadFunc
	now       func() time.Time
	maxCycles int
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the operational logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Monitor) {
		m.log = l
	}
}

// WithReader replaces the tail reader.
func WithReader(r ReadFunc) Option {
	return func(m *Monitor) {
		if r != nil {
			m.read = r
		}
	}
}

// WithClock replaces time.Now for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMaxCycles stops Run after n cycles. Zero means run until cancelled.
func WithMaxCycles(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.maxCycles = n
		}
	}
}

// New creates a Monitor. cfg must already be validated and is not modified.
func New(cfg *config.Config, formatter Formatter, out io.Writer, opts ...Option) (*Monitor, error) {
	if cfg == nil {
		return nil, errors.New("monitor: config is required")
	}
	if formatter == nil {
		return nil, errors.New("monitor: formatter is required")
	}
	if out == nil {
		return nil, errors.New("monitor: output writer is required")
	}
	if cfg.WindowSize <= 0 || cfg.PollInterval <= 0 || cfg.ErrorThreshold < 0 || cfg.SlowThreshold < 0 {
		return nil, fmt.Errorf("monitor: %w: window_size=%d poll_interval=%s error_threshold=%d slow_threshold=%d",
			config.ErrInvalid, cfg.WindowSize, cfg.PollInterval, cfg.ErrorThreshold, cfg.SlowThreshold)
	}

	m := &Monitor{
		cfg: cfg,
		classifier: classifier.New(
			classifier.WithErrorMarker(cfg.ErrorMarker),
			classifier.WithSlowMarker(cfg.SlowMarker),
		),
		formatter: formatter,
		out:       out,
		id:        uuid.NewString(),
		log:       zerolog.Nop(),
		read:      tail.Read,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.log = m.log.With().Str("monitor", m.name()).Str("monitor_id", m.id).Logger()
	return m, nil
}

// ID returns the instance identifier assigned at construction.
func (m *Monitor) ID() string {
	return m.id
}

// Banner describes this monitor's settings.
func (m *Monitor) Banner() *Banner {
	return &Banner{
		Monitor:        m.name(),
		MonitorID:      m.id,
		LogPath:        m.cfg.LogPath,
		PollInterval:   m.cfg.PollInterval,
		ErrorThreshold: m.cfg.ErrorThreshold,
		SlowThreshold:  m.cfg.SlowThreshold,
		WindowSize:     m.cfg.WindowSize,
	}
}

// Check captures the current window, classifies it and decides the state.
// It never fails: an unreadable log counts as an empty window.
func (m *Monitor) Check(_ context.Context) *Report {
	start := m.now()

	window := m.capture()
	counts := m.classifier.Classify(window)
	state := Evaluate(counts, m.cfg.ErrorThreshold, m.cfg.SlowThreshold)

	report := &Report{
		Monitor:        m.name(),
		MonitorID:      m.id,
		State:          state,
		Errors:         counts.Errors,
		Slow:           counts.Slow,
		WindowLines:    len(window),
		WindowSize:     m.cfg.WindowSize,
		ErrorThreshold: m.cfg.ErrorThreshold,
		SlowThreshold:  m.cfg.SlowThreshold,
		LogPath:        m.cfg.LogPath,
		CheckedAt:      start,
		Duration:       m.now().Sub(start),
	}

	m.log.Debug().
		Str("state", string(state)).
		Int("errors", counts.Errors).
		Int("slow", counts.Slow).
		Int("window", len(window)).
		Dur("took", report.Duration).
		Msg("cycle_checked")

	return report
}

// Cycle runs Check and writes the report. Write failures are logged and
// otherwise ignored.
func (m *Monitor) Cycle(ctx context.Context) *Report {
	report := m.Check(ctx)
	if err := m.formatter.Format(ctx, report, m.out); err != nil {
		m.log.Warn().Err(err).Msg("report_write_failed")
	}
	return report
}

// Run writes the startup banner and then cycles every PollInterval until ctx
// is cancelled or the cycle limit is reached. Cancellation is checked before
// each cycle and interrupts the sleep between cycles. It returns the number of
// cycles completed.
func (m *Monitor) Run(ctx context.Context) int {
	m.log.Info().
		Str("log_path", m.cfg.LogPath).
		Dur("interval", m.cfg.PollInterval).
		Int("window_size", m.cfg.WindowSize).
		Int("error_threshold", m.cfg.ErrorThreshold).
		Int("slow_threshold", m.cfg.SlowThreshold).
		Msg("monitor_started")

	if err := m.formatter.FormatBanner(ctx, m.Banner(), m.out); err != nil {
		m.log.Warn().Err(err).Msg("banner_write_failed")
	}

	cycles := 0
	for ctx.Err() == nil {
		m.Cycle(ctx)
		cycles++

		if m.maxCycles > 0 && cycles >= m.maxCycles {
			break
		}
		if !sleep(ctx, m.cfg.PollInterval) {
			break
		}
	}

	m.log.Info().Int("cycles", cycles).Msg("monitor_stopped")
	return cycles
}

// capture reads the window, treating any failure as "no data this cycle".
func (m *Monitor) capture() (window []string) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Msg("panic_recovered")
			window = nil
		}
	}()

	window, err := m.read(m.cfg.LogPath, m.cfg.WindowSize)
	if err != nil {
		m.log.Warn().Err(err).Str("log_path", m.cfg.LogPath).Msg("tail_read_failed")
		return nil
	}
	return window
}

func (m *Monitor) name() string {
	if m.cfg.Name == "" {
		return config.DefaultName
	}
	return m.cfg.Name
}

// sleep waits for d and reports whether the wait completed without ctx being
// cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
