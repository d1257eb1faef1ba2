package bench

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns a hex xxhash of input. Runs store it so identical
// inputs can be spotted across sources.
func ComputeHash(input string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(input))
}

// TruncateSource shortens a source for display, keeping the end which is more informative.
func TruncateSource(source string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return source[:min(len(source), maxLen)]
	}
	if len(source) <= maxLen {
		return source
	}
	return "..." + source[len(source)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatDuration rounds d for tables: microseconds below a millisecond,
// otherwise milliseconds with two decimals.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
