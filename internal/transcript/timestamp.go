package transcript

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm)
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	secs := ms / 1000
	ms -= secs * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

// ParseTimestamp parses HH:MM:SS,mmm, HH:MM:SS.mmm or MM:SS.mmm into seconds
func ParseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")

	var hours, minutes float64
	var secPart string
	var err error

	switch len(parts) {
	case 2:
		if minutes, err = strconv.ParseFloat(parts[0], 64); err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}
		secPart = parts[1]
	case 3:
		if hours, err = strconv.ParseFloat(parts[0], 64); err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}
		if minutes, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", s)
		}
		secPart = parts[2]
	default:
		return 0, fmt.Errorf("invalid timestamp format: %s", s)
	}

	seconds, err := strconv.ParseFloat(strings.Replace(secPart, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp format: %s", s)
	}

	return hours*3600 + minutes*60 + seconds, nil
}
