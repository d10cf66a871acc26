// Package cli provides the command-line interface for tailwatch.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tailwatch/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the root command with args, writing command output to
// stdout and errors to stderr, and returns the exit code.
func ExecuteArgs(args []string, stdout, stderr io.Writer) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tailwatch",
		Short: "Watch the tail of a log file for error and slow-response bursts",
		Long: `tailwatch polls the last N lines of a log file on a fixed interval and
counts error lines and slow-response lines in that window.

Every cycle prints exactly one line:
  [ALERT] <name>: ERROR threshold exceeded (<n> in last <lines> lines)
  [ALERT] <name>: SLOW threshold exceeded (<n> in last <lines> lines)
  [OK] <name>: errors=<e>, slow=<s> (window=<lines> lines)

Operational logs (startup, shutdown, read failures) go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "", "Operational log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "Operational log format (console|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
