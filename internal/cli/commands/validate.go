package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tailwatch/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a tailwatch configuration file without watching anything.

Checks:
  - YAML or TOML syntax
  - Value ranges (window, thresholds, interval)
  - Markers, output format, color mode and log level
  - Log file existence (warning only)

Environment overrides are applied, so the printed settings are the ones
"tailwatch run" would use.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Name:            %s\n", cfg.Name)
	fmt.Fprintf(out, "  Log path:        %s\n", cfg.LogPath)
	fmt.Fprintf(out, "  Window:          last %d lines\n", cfg.WindowSize)
	fmt.Fprintf(out, "  Thresholds:      ERROR>=%d, SLOW>=%d\n", cfg.ErrorThreshold, cfg.SlowThreshold)
	fmt.Fprintf(out, "  Interval:        %s\n", cfg.PollInterval)
	fmt.Fprintf(out, "  Error marker:    %q\n", cfg.ErrorMarker)
	fmt.Fprintf(out, "  Slow marker:     %q\n", cfg.SlowMarker)
	fmt.Fprintf(out, "  Output:          %s (color %s)\n", cfg.Output.Format, cfg.Output.Color)
	fmt.Fprintf(out, "  Logging:         %s, %s, %s\n", cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

	if cfg.ErrorThreshold == 0 || cfg.SlowThreshold == 0 {
		fmt.Fprintf(out, "\nWarning: a threshold of 0 alerts on every cycle\n")
	}

	if _, err := os.Stat(cfg.LogPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "\nWarning: Log file does not exist yet: %s\n", cfg.LogPath)
	} else if err != nil {
		fmt.Fprintf(out, "\nWarning: Cannot access log file: %v\n", err)
	}

	return nil
}
