package parser

import (
	"fmt"
	"strings"
)

// Parse splits a log line into its fields. Errors wrap ErrFormat.
func Parse(line string) (*Record, error) {
	ts, err := ExtractTimestamp(line)
	if err != nil {
		return nil, err
	}

	fields := strings.SplitN(line, Separator, 4)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: expected 4 fields, got %d", ErrFormat, len(fields))
	}

	if !Levels[fields[1]] {
		return nil, fmt.Errorf("%w: unknown level %q", ErrFormat, fields[1])
	}

	return &Record{
		Raw:       line,
		Timestamp: ts,
		Level:     fields[1],
		Context:   fields[2],
		Message:   fields[3],
	}, nil
}

// Conforms reports whether line follows the log format.
func Conforms(line string) bool {
	_, err := Parse(line)
	return err == nil
}
