package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tailwatch/internal/logging"
	"github.com/ccollicutt/tailwatch/pkg/monitor"
)

// RunOptions holds command-line options for the run command.
type RunOptions struct {
	MonitorOptions
	Cycles int
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [config-file]",
		Short: "Watch a log file and report on every cycle",
		Long: `Watch the tail of a log file and print one report line per cycle.

Each cycle reads the last window of lines, counts error and slow lines, and
prints an [ALERT] line when a threshold is reached or an [OK] line otherwise.
Error alerts take precedence over slow alerts.

Settings are taken from defaults, then the config file, then the environment
(LOG_PATH, ERROR_THRESHOLD, SLOW_THRESHOLD, INTERVAL_SECONDS, WINDOW_LINES,
SLOW_MARKER), then flags.

Runs until interrupted (SIGINT or SIGTERM), or for --cycles cycles.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().IntVar(&opts.Cycles, "cycles", 0, "Stop after this many cycles (0 runs until interrupted)")

	return cmd
}

func runMonitor(cmd *cobra.Command, args []string, opts *RunOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Cycles < 0 {
		return fmt.Errorf("--cycles must be >= 0, got %d", opts.Cycles)
	}

	cfg, err := loadConfig(ctx, cmd, configArg(args), &opts.MonitorOptions)
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	out := cmd.OutOrStdout()
	formatter, err := newFormatter(cfg, out)
	if err != nil {
		return err
	}

	m, err := monitor.New(cfg, formatter, out,
		monitor.WithLogger(log),
		monitor.WithMaxCycles(opts.Cycles),
	)
	if err != nil {
		return fmt.Errorf("creating monitor: %w", err)
	}

	m.Run(ctx)
	return nil
}
