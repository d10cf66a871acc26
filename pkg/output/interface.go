// Package output formats monitor reports for the console or for machines.
package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/tailwatch/pkg/monitor"
)

// Formatter renders cycle reports in a specific format.
type Formatter interface {
	// Format renders one cycle report to the given writer.
	Format(ctx context.Context, report *monitor.Report, w io.Writer) error

	// FormatBanner renders the startup banner to the given writer.
	FormatBanner(ctx context.Context, banner *monitor.Banner, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds a detail line to each report.
	Verbose bool

	// Quiet suppresses OK reports and the startup banner.
	Quiet bool

	// Color styles report prefixes with ANSI colors.
	Color bool
}

// New returns the formatter for name ("text" or "json").
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text", "":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", name)
	}
}

var _ monitor.Formatter = (Formatter)(nil)
