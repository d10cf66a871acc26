package classifier

import "strings"

// Classifier counts marker occurrences in a window of log lines.
type Classifier struct {
	errorMarker string
	slowMarker  string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithErrorMarker overrides the error marker. Empty values keep the default.
func WithErrorMarker(marker string) Option {
	return func(c *Classifier) {
		if marker != "" {
			c.errorMarker = marker
		}
	}
}

// WithSlowMarker overrides the slow marker. Empty values keep the default.
func WithSlowMarker(marker string) Option {
	return func(c *Classifier) {
		if marker != "" {
			c.slowMarker = marker
		}
	}
}

// New creates a Classifier using the default markers unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		errorMarker: DefaultErrorMarker,
		slowMarker:  DefaultSlowMarker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ErrorMarker returns the marker used to count error lines.
func (c *Classifier) ErrorMarker() string {
	return c.errorMarker
}

// SlowMarker returns the marker used to count slow lines.
func (c *Classifier) SlowMarker() string {
	return c.slowMarker
}

// Classify counts error and slow lines in the window.
func (c *Classifier) Classify(window []string) Counts {
	return Counts{
		Errors: CountMarker(window, c.errorMarker),
		Slow:   CountMarker(window, c.slowMarker),
	}
}

// CountErrors counts lines containing DefaultErrorMarker.
func CountErrors(lines []string) int {
	return CountMarker(lines, DefaultErrorMarker)
}

// CountSlow counts lines containing marker.
func CountSlow(lines []string, marker string) int {
	return CountMarker(lines, marker)
}

// CountMarker counts lines that contain marker anywhere in the line.
// Matching is exact and case-sensitive. An empty marker matches nothing.
func CountMarker(lines []string, marker string) int {
	if marker == "" {
		return 0
	}
	n := 0
	for _, line := range lines {
		if strings.Contains(line, marker) {
			n++
		}
	}
	return n
}
