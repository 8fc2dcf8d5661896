package listmodel

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatFilesize renders a byte count for the size column, "" if unknown
func FormatFilesize(size int64) string {
	if size <= 0 {
		return ""
	}
	return humanize.IBytes(uint64(size))
}

// firstLine returns the first non-empty line of s, trimmed
func firstLine(s string) string {
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
