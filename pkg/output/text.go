package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ccollicutt/tailwatch/pkg/monitor"
)

// TextFormatter formats reports as one human-readable line per cycle.
type TextFormatter struct {
	opts FormatOptions

	alert lipgloss.Style
	ok    lipgloss.Style
	info  lipgloss.Style
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	// A private renderer keeps color decisions out of lipgloss's global
	// terminal detection; Color alone decides.
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	return &TextFormatter{
		opts:  opts,
		alert: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
		info:  r.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *monitor.Report, w io.Writer) error {
	if f.opts.Quiet && !report.IsAlert() {
		return nil
	}

	var b strings.Builder
	switch report.State {
	case monitor.StateErrorAlert:
		fmt.Fprintf(&b, "%s %s: ERROR threshold exceeded (%d in last %d lines)\n",
			f.prefix(f.alert, "[ALERT]"), report.Monitor, report.Errors, report.WindowLines)
	case monitor.StateSlowAlert:
		fmt.Fprintf(&b, "%s %s: SLOW threshold exceeded (%d in last %d lines)\n",
			f.prefix(f.alert, "[ALERT]"), report.Monitor, report.Slow, report.WindowLines)
	default:
		fmt.Fprintf(&b, "%s %s: errors=%d, slow=%d (window=%d lines)\n",
			f.prefix(f.ok, "[OK]"), report.Monitor, report.Errors, report.Slow, report.WindowLines)
	}

	if f.opts.Verbose {
		fmt.Fprintf(&b, "  log=%s window_size=%d thresholds=ERROR>=%d,SLOW>=%d took=%s\n",
			report.LogPath,
			report.WindowSize,
			report.ErrorThreshold,
			report.SlowThreshold,
			report.Duration.Round(1e3))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatBanner renders the startup banner as three INFO lines.
func (f *TextFormatter) FormatBanner(ctx context.Context, banner *monitor.Banner, w io.Writer) error {
	if f.opts.Quiet {
		return nil
	}

	info := f.prefix(f.info, "[INFO]")
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s watching %s every %s\n", info, banner.Monitor, banner.LogPath, banner.PollInterval)
	fmt.Fprintf(&b, "%s thresholds: ERROR>=%d, SLOW>=%d\n", info, banner.ErrorThreshold, banner.SlowThreshold)
	fmt.Fprintf(&b, "%s window: last %d total log lines\n", info, banner.WindowSize)

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TextFormatter) prefix(style lipgloss.Style, tag string) string {
	if !f.opts.Color {
		return tag
	}
	return style.Render(tag)
}
