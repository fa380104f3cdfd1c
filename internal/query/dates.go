package query

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate reads a calendar date from a dateFound value. Full RFC 3339 timestamps are
// accepted and reduced to the calendar date in their own offset. The result is midnight
// UTC so dates compare by day only.
func ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}

	if d, err := time.Parse(dateLayout, trimmed); err == nil {
		return d, true
	}

	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// FormatDate renders a dateFound value the way reports print it ("Jan 2, 2006").
// Unparseable values are returned unchanged.
func FormatDate(raw string) string {
	d, ok := ParseDate(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	return d.Format("Jan 2, 2006")
}
