package util

import (
	"fmt"
	"strings"
)

// ErrWrap returns a function which hands back the given value
// or, if the paired error is not nil, the fallback one:
// > util.ErrWrap("default")(cmd.Flags().GetString("flag"))
func ErrWrap[T any](fallback T) func(T, error) T {
	return func(value T, err error) T {
		if err != nil {
			return fallback
		}
		return value
	}
}

// ErrSuppress explicitly discards an error
func ErrSuppress(_ error) {}

// Excerpt returns the first line of the given text,
// truncated to the given length (if any)
func Excerpt(text string, length ...int) string {
	excerpt := strings.TrimSpace(strings.Split(text, "\n")[0])
	limit := 25
	if len(length) > 0 {
		limit = length[0]
	}
	if runes := []rune(excerpt); len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return excerpt
}

// HumanizeBytes renders a byte count using binary multiples
func HumanizeBytes(bytes int) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FirstNonEmpty returns the first of the given values which is not blank
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); len(trimmed) > 0 {
			return trimmed
		}
	}
	return ""
}
