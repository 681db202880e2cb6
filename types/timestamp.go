package types

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing ISO-8601 text.
// The list covers what browsers emit from Date.toISOString() and what the
// scanner writes, plus the date-only and zone-less forms users type by hand.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses ISO-8601 text. Zone-less values are read as UTC.
// The boolean is false for empty or unparsable input.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t the way new assignments and scan results are stored
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
