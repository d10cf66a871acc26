// Package parser parses lines written in the collaborator log format:
//
//	<timestamp> | <LEVEL> | <context> | <message>
//
// The monitor itself never parses lines; it substring-matches. This package
// backs diagnostics that check whether a log actually follows the format.
package parser

import (
	"errors"
	"time"
)

// ErrFormat is returned for lines that do not follow the log format.
var ErrFormat = errors.New("line does not match log format")

// Separator sits between the fields of a log line.
const Separator = " | "

// TimestampLayout is the layout of the leading timestamp, e.g.
// "2024-01-15 10:00:00,123".
const TimestampLayout = "2006-01-02 15:04:05,000"

// Record is one parsed log line.
type Record struct {
	// Raw is the original line content.
	Raw string

	// Timestamp is the parsed leading timestamp.
	Timestamp time.Time

	// Level is the severity field, e.g. INFO or ERROR.
	Level string

	// Context is the third field, e.g. ENV=dev.
	Context string

	// Message is everything after the context field. It may itself
	// contain the separator.
	Message string
}

// Levels lists the severity names the format allows.
var Levels = map[string]bool{
	"DEBUG":    true,
	"INFO":     true,
	"WARNING":  true,
	"WARN":     true,
	"ERROR":    true,
	"CRITICAL": true,
}
