package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccollicutt/tailwatch/pkg/config"
	"github.com/ccollicutt/tailwatch/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// MonitorOptions holds the command-line overrides shared by run and check.
type MonitorOptions struct {
	LogPath        string
	Window         int
	ErrorThreshold int
	SlowThreshold  int
	Interval       time.Duration
	SlowMarker     string
	ErrorMarker    string
	Name           string
	Output         string
	Quiet          bool
	Verbose        bool
	Color          string
	EnvFile        string
}

func (o *MonitorOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.LogPath, "log-path", "", "Log file to watch (default "+config.DefaultLogPath+")")
	f.IntVar(&o.Window, "window", 0, "Number of trailing lines evaluated per cycle")
	f.IntVar(&o.ErrorThreshold, "error-threshold", 0, "Alert when error lines in the window reach this count")
	f.IntVar(&o.SlowThreshold, "slow-threshold", 0, "Alert when slow lines in the window reach this count")
	f.DurationVar(&o.Interval, "interval", 0, "Time between cycles (e.g., 5s, 1m)")
	f.StringVar(&o.SlowMarker, "slow-marker", "", "Substring that marks a slow line")
	f.StringVar(&o.ErrorMarker, "error-marker", "", "Substring that marks an error line")
	f.StringVar(&o.Name, "name", "", "Monitor name shown in reports")
	f.StringVarP(&o.Output, "output", "o", "", "Output format (text|json)")
	f.BoolVarP(&o.Quiet, "quiet", "q", false, "Print alerts only")
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "Print window details under each report")
	f.StringVar(&o.Color, "color", "", "Color mode (auto|always|never)")
	f.StringVar(&o.EnvFile, "env-file", "", "Load environment variables from a dotenv file first")
}

// loadConfig builds the effective configuration: defaults, then the optional
// file, then the environment, then any flag the user set explicitly.
func loadConfig(ctx context.Context, cmd *cobra.Command, path string, o *MonitorOptions) (*config.Config, error) {
	if o.EnvFile != "" {
		if err := godotenv.Load(o.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	cfg, err := config.LoadOrDefault(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagChanged(cmd, "log-path") {
		cfg.LogPath = o.LogPath
	}
	if flagChanged(cmd, "window") {
		cfg.WindowSize = o.Window
	}
	if flagChanged(cmd, "error-threshold") {
		cfg.ErrorThreshold = o.ErrorThreshold
	}
	if flagChanged(cmd, "slow-threshold") {
		cfg.SlowThreshold = o.SlowThreshold
	}
	if flagChanged(cmd, "interval") {
		cfg.PollInterval = o.Interval
	}
	if flagChanged(cmd, "slow-marker") {
		cfg.SlowMarker = o.SlowMarker
	}
	if flagChanged(cmd, "error-marker") {
		cfg.ErrorMarker = o.ErrorMarker
	}
	if flagChanged(cmd, "name") {
		cfg.Name = o.Name
	}
	if flagChanged(cmd, "output") {
		cfg.Output.Format = config.OutputFormat(o.Output)
	}
	if flagChanged(cmd, "quiet") {
		cfg.Output.Quiet = o.Quiet
	}
	if flagChanged(cmd, "verbose") {
		cfg.Output.Verbose = o.Verbose
	}
	if flagChanged(cmd, "color") {
		cfg.Output.Color = config.ColorMode(o.Color)
	}
	if v, ok := flagValue(cmd, "log-level"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := flagValue(cmd, "log-format"); ok {
		cfg.Logging.Format = v
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating flags: %w", err)
	}
	return cfg, nil
}

// newFormatter creates the report formatter for cfg writing to w.
func newFormatter(cfg *config.Config, w io.Writer) (output.Formatter, error) {
	return output.New(string(cfg.Output.Format), output.FormatOptions{
		Verbose: cfg.Output.Verbose,
		Quiet:   cfg.Output.Quiet,
		Color:   useColor(cfg.Output.Color, w),
	})
}

// useColor resolves a color mode against the destination. Auto colors only
// terminals and honors NO_COLOR.
func useColor(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func flagValue(cmd *cobra.Command, name string) (string, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

func configArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
