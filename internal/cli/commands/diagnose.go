package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tailwatch/pkg/classifier"
	"github.com/ccollicutt/tailwatch/pkg/config"
	"github.com/ccollicutt/tailwatch/pkg/monitor"
	"github.com/ccollicutt/tailwatch/pkg/parser"
	"github.com/ccollicutt/tailwatch/pkg/tail"
)

// formatSampleSize is how many trailing lines are checked against the line format.
const formatSampleSize = 20

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose [config-file]",
		Short: "Diagnose common configuration issues",
		Long: `Diagnose common configuration issues.

This command checks:
- Config file syntax and values (defaults and environment when no file is given)
- Log file existence and readability
- Line format of the current tail (<timestamp> | <LEVEL> | <context> | <message>)
- Marker hits in the current window
- Threshold sanity

Example:
  tailwatch diagnose config.yaml
  tailwatch diagnose -v            # defaults and environment, verbose`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDiagnose(ctx, cmd.OutOrStdout(), configArg(args), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, configPath string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Check config file existence
	if configPath != "" {
		result := checkConfigExists(configPath)
		results = append(results, result)
		if result.Status == "error" {
			printDiagnostics(w, results, opts)
			return nil
		}
	}

	// 2. Parse config file
	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. Check log file
	logResult := checkLogFile(cfg)
	results = append(results, logResult)

	// 4. Check line format and markers against the current tail
	if logResult.Status == "ok" {
		window := tail.Lines(cfg.LogPath, cfg.WindowSize)
		results = append(results, checkLineFormat(window, opts))
		results = append(results, checkMarkers(cfg, window, opts))
	}

	// 5. Check thresholds
	results = append(results, checkThresholds(cfg)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Omit the config file to use defaults and environment variables",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Config file is empty"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found (%d bytes)", info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}
	if path == "" {
		result.Check = "Settings"
	}

	cfg, err := config.LoadOrDefault(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		switch {
		case strings.Contains(err.Error(), "yaml"):
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
				`Durations must be strings, e.g. poll_interval: "5s"`,
			}
		case strings.Contains(err.Error(), "toml"):
			result.Suggests = []string{
				`Check TOML syntax, e.g. poll_interval = "5s"`,
			}
		case strings.Contains(err.Error(), "environment"):
			result.Suggests = []string{
				"Numeric environment variables must be integers (e.g. ERROR_THRESHOLD=2)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	if path == "" {
		result.Message = "Using defaults and environment"
	} else {
		result.Message = "Config file parsed successfully"
	}
	result.Details = []string{
		fmt.Sprintf("Log path: %s", cfg.LogPath),
		fmt.Sprintf("Window: %d lines", cfg.WindowSize),
		fmt.Sprintf("Thresholds: ERROR>=%d, SLOW>=%d", cfg.ErrorThreshold, cfg.SlowThreshold),
		fmt.Sprintf("Interval: %s", cfg.PollInterval),
	}
	return cfg, result
}

func checkLogFile(cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Log File: %s", cfg.LogPath),
	}

	info, err := os.Stat(cfg.LogPath)
	switch {
	case os.IsNotExist(err):
		result.Status = "warning"
		result.Message = "File does not exist yet (cycles report an empty window)"
		result.Suggests = []string{
			"Check if the log file path is correct",
			"Set LOG_PATH or --log-path to point at the service log",
		}
	case err != nil:
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		result.Suggests = []string{"Check file permissions"}
	case info.IsDir():
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
	case info.Size() == 0:
		result.Status = "warning"
		result.Message = "File is empty (0 bytes)"
	default:
		if _, err := tail.Read(cfg.LogPath, 1); err != nil {
			result.Status = "error"
			result.Message = fmt.Sprintf("Cannot read file: %v", err)
			result.Suggests = []string{"Check file permissions"}
			return result
		}
		result.Status = "ok"
		result.Message = fmt.Sprintf("File exists (%d bytes)", info.Size())
	}

	return result
}

// checkLineFormat samples the end of the window and checks each line against
// "<timestamp> | <LEVEL> | <context> | <message>".
func checkLineFormat(window []string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Line Format",
	}

	sample := window
	if len(sample) > formatSampleSize {
		sample = sample[len(sample)-formatSampleSize:]
	}

	matchCount := 0
	total := 0
	var sampleMatch, sampleFail string
	for _, line := range sample {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		if parser.Conforms(line) {
			matchCount++
			if sampleMatch == "" {
				sampleMatch = line
			}
		} else if sampleFail == "" {
			sampleFail = line
		}
	}

	switch {
	case total == 0:
		result.Status = "warning"
		result.Message = "No lines to check"
	case matchCount == 0:
		result.Status = "warning"
		result.Message = "No sampled lines match the expected format"
		result.Suggests = []string{
			"Markers are plain substrings and still work on other formats",
			"Set error_marker to match how this log writes errors",
		}
		result.Details = []string{"Sample line that didn't match:", truncate(sampleFail, 80)}
	case matchCount < total:
		result.Status = "warning"
		result.Message = fmt.Sprintf("Format matches only %d/%d sample lines", matchCount, total)
		result.Details = []string{"Sample line that didn't match:", truncate(sampleFail, 80)}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("Format matches %d/%d sample lines", matchCount, total)
		if opts.Verbose {
			result.Details = []string{"Sample match:", truncate(sampleMatch, 80)}
		}
	}

	return result
}

func checkMarkers(cfg *config.Config, window []string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Current Window",
	}

	c := classifier.New(
		classifier.WithErrorMarker(cfg.ErrorMarker),
		classifier.WithSlowMarker(cfg.SlowMarker),
	)
	counts := c.Classify(window)
	state := monitor.Evaluate(counts, cfg.ErrorThreshold, cfg.SlowThreshold)

	result.Message = fmt.Sprintf("errors=%d, slow=%d in last %d lines (state %s)",
		counts.Errors, counts.Slow, len(window), state)
	if state.IsAlert() {
		result.Status = "warning"
		result.Suggests = []string{"The monitor would alert on its next cycle"}
	} else {
		result.Status = "ok"
	}
	if opts.Verbose {
		result.Details = []string{
			fmt.Sprintf("Error marker: %q", cfg.ErrorMarker),
			fmt.Sprintf("Slow marker: %q", cfg.SlowMarker),
		}
	}

	return result
}

func checkThresholds(cfg *config.Config) []DiagnosticResult {
	results := []DiagnosticResult{}

	check := func(name string, threshold int) {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Threshold: %s", name),
		}
		switch {
		case threshold == 0:
			result.Status = "warning"
			result.Message = "Threshold is 0; every cycle will alert"
			result.Suggests = []string{"Use 1 to alert on the first matching line"}
		case threshold > cfg.WindowSize:
			result.Status = "warning"
			result.Message = fmt.Sprintf("Threshold %d exceeds window size %d and can never be reached", threshold, cfg.WindowSize)
			result.Suggests = []string{"Lower the threshold or widen the window"}
		default:
			result.Status = "ok"
			result.Message = fmt.Sprintf("%s>=%d", name, threshold)
		}
		results = append(results, result)
	}

	check("ERROR", cfg.ErrorThreshold)
	check("SLOW", cfg.SlowThreshold)
	return results
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== tailwatch Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running the monitor.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nConfiguration is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nConfiguration looks good!")
	}
}

// truncate shortens s to maxLen runes, cutting on a rune boundary.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
