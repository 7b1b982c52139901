// Package timefmt formats the mixed timestamp representations returned by
// the backends: epoch seconds, epoch milliseconds, or RFC 3339 strings.
package timefmt

import (
	"time"
)

// display is the human-readable layout used throughout the UI.
const display = "01/02/2006 03:04pm"

// millisThreshold separates epoch-seconds from epoch-millis values. Any
// numeric timestamp above ten billion is treated as milliseconds.
const millisThreshold = 10_000_000_000

// Format renders a timestamp value decoded from JSON (float64 for numbers,
// string for ISO dates) as "MM/DD/YYYY HH:MMam/pm" in local time. Unknown or
// missing values render as "N/A"; unparseable strings pass through verbatim.
func Format(v any) string {
	switch ts := v.(type) {
	case nil:
		return "N/A"
	case float64:
		return FormatUnix(ts)
	case int64:
		return FormatUnix(float64(ts))
	case int:
		return FormatUnix(float64(ts))
	case string:
		if ts == "" {
			return "N/A"
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return t.Local().Format(display)
		}
		return ts
	default:
		return "N/A"
	}
}

// FormatUnix renders an epoch timestamp, detecting seconds vs milliseconds.
func FormatUnix(ts float64) string {
	var t time.Time
	if ts > millisThreshold {
		sec := int64(ts / 1000)
		nsec := int64(ts) % 1000 * int64(time.Millisecond)
		t = time.Unix(sec, nsec)
	} else {
		t = time.Unix(int64(ts), 0)
	}
	return t.Local().Format(display)
}
