package parser

import (
	"fmt"
	"regexp"
	"time"
)

// timestampPattern captures the leading timestamp up to the first separator.
var timestampPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3}) \| `)

// ExtractTimestamp parses the leading timestamp of a log line.
// Returns zero time and an error if the line does not start with one.
func ExtractTimestamp(line string) (time.Time, error) {
	matches := timestampPattern.FindStringSubmatch(line)
	if len(matches) < 2 {
		return time.Time{}, fmt.Errorf("%w: no leading timestamp", ErrFormat)
	}

	ts, err := time.Parse(TimestampLayout, matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parsing timestamp %q: %v", ErrFormat, matches[1], err)
	}

	return ts, nil
}
