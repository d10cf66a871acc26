// Package tail reads the last lines of a growing log file.
//
// Every call scans the file from the beginning and keeps only the most recent
// lines in a ring buffer that grows up to the number of lines requested. Memory
// is bounded by the smaller of the requested count and the file's line count.
// Nothing is cached between calls.
package tail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// initialRing caps the up-front ring allocation; the ring grows past it only
// as lines arrive.
const initialRing = 4096

// Read returns at most maxLines from the end of the file at path, oldest first.
//
// A missing file is not an error: it returns nil, nil. Invalid UTF-8 is
// replaced with U+FFFD instead of failing the read. Other I/O errors are
// returned wrapped.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path) // #nosec G304 -- log path comes from operator config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(transform.NewReader(file, unicode.UTF8.NewDecoder()), 64*1024)

	ring := make([]string, 0, min(maxLines, initialRing))
	idx := 0 // oldest entry once the ring is full
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if len(ring) < maxLines {
				ring = append(ring, trimEOL(line))
			} else {
				ring[idx] = trimEOL(line)
				idx = (idx + 1) % maxLines
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read log: %w", err)
		}
	}

	lines := make([]string, 0, len(ring))
	lines = append(lines, ring[idx:]...)
	lines = append(lines, ring[:idx]...)
	return lines, nil
}

// Lines is Read with every error absorbed into an empty result.
// A log that cannot be read this cycle is treated as having nothing to read.
func Lines(path string, maxLines int) []string {
	lines, err := Read(path, maxLines)
	if err != nil {
		return []string{}
	}
	if lines == nil {
		return []string{}
	}
	return lines
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
