// tailwatch - Log Window Monitor
//
// tailwatch watches the tail of a log file and prints one status line per
// cycle, alerting when error or slow-response lines pile up in the window.
package main

import (
	"os"

	"github.com/ccollicutt/tailwatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
