package normalize

import (
	"strconv"
	"strings"
)

// ParseHours parses a resolution duration in hours. Accepts plain floats
// ("3.5") and the locale form the exports use ("3,5", "1.234,5").
// Returns nil if the input is empty, unparseable, or negative.
func ParseHours(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.Contains(s, ",") {
		// Comma decimal; any dots are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
