package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCount formats a row count with comma grouping.
// e.g., 1234567 -> "1,234,567"
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}

// FormatRate formats a decimal fraction as a percentage.
// e.g., 0.045 -> "4.50%"
func FormatRate(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}
