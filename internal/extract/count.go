package extract

import (
	"math"
	"strconv"
	"strings"
)

// ParseCount converts abbreviated engagement counts like "1.2K", "5.7M",
// "2B" or "1,234" to integers. X renders these for humans, so the format
// drifts; anything unparseable degrades to 0 rather than failing the
// record it came from.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToUpper(s), "K"):
		multiplier = 1e3
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToUpper(s), "M"):
		multiplier = 1e6
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToUpper(s), "B"):
		multiplier = 1e9
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return int(math.Round(value * multiplier))
}
