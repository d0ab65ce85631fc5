// Package fsutil provides the small filesystem and time helpers the writer
// façade needs when recording files: existence checks, portable whole-file
// reads, wall-clock formatting, and newline counting.
package fsutil

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Exists reports whether path opens for reading.
func Exists(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// ReadFile returns the full text of path with portable newline handling:
// "\r\n", bare "\r", and bare "\n" each normalize to a single "\n"; a file
// with no trailing terminator does not gain a synthetic one.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", path, err)
	}

	var b strings.Builder
	b.Grow(len(data))
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			b.WriteByte('\n')
		case '\r':
			b.WriteByte('\n')
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
		default:
			b.WriteByte(data[i])
		}
	}
	return b.String(), nil
}

// FormatDateTime renders unixSeconds as "YYYY-MM-DD HH:MM:SS" in local time.
func FormatDateTime(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).Format("2006-01-02 15:04:05")
}

// LineCount returns the number of '\n' bytes in text.
func LineCount(text string) int {
	return strings.Count(text, "\n")
}
