package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tailwatch/internal/logging"
	"github.com/ccollicutt/tailwatch/pkg/monitor"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &MonitorOptions{}

	cmd := &cobra.Command{
		Use:   "check [config-file]",
		Short: "Evaluate the log window once",
		Long: `Run a single cycle against the current tail of the log file and print the
report. No startup banner is printed.

Exit codes:
  0 - Window is OK
  1 - A threshold was reached
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *MonitorOptions) error {
	ExitCode = 0

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, cmd, configArg(args), opts)
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

	m, err := monitor.New(cfg, formatter, out, monitor.WithLogger(log))
	if err != nil {
		return fmt.Errorf("creating monitor: %w", err)
	}

	report := m.Check(ctx)
	if err := formatter.Format(ctx, report, out); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if report.IsAlert() {
		ExitCode = 1
	}
	return nil
}
