package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeRegex = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minute|minutes|h|hour|hours)\s+ago$`)

// ParseTimestamp parses a session boundary relative to now
// Supported formats:
// - "2006-01-02 15:04:05" and "2006-01-02 15:04"
// - "15:04:05" and "15:04" (today)
// - "now"
// - X minutes/hours ago (e.g., "90 min ago", "2 hours ago")
func ParseTimestamp(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}
	if input == "now" {
		return now.Truncate(time.Second), nil
	}

	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return t, nil
		}
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
		}
	}

	if t, err := parseRelative(input, now); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q. Use: YYYY-MM-DD HH:MM[:SS], HH:MM[:SS], now, or X minutes/hours ago", input)
}

// parseRelative parses "X minutes ago" and "X hours ago"
func parseRelative(input string, now time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	unit := time.Minute
	if strings.HasPrefix(matches[2], "h") {
		unit = time.Hour
	}
	return now.Add(-time.Duration(amount) * unit).Truncate(time.Second), nil
}
