// Package source loads and normalizes server records from JSON documents.
package source

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Layouts carrying an embedded time component. These parse to the exact
// instant given (local when the layout carries no zone).
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Plain calendar-date layouts. A bare date means the server is paid through
// that whole day, so it resolves to end of day local time. Treating it as
// midnight would misclassify a same-day expiry as already elapsed.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
}

// epochMillisThreshold separates unix seconds from unix milliseconds.
// Anything above it is far beyond year 10000 when read as seconds.
const epochMillisThreshold = 1e12

// ParseExpiry resolves a raw expire value into an absolute instant.
// Accepted shapes: a string with an embedded time component, a plain
// calendar date (resolved to 23:59:59.999... local), an epoch number
// (seconds or milliseconds), or a numeric string. Returns false when no
// form yields a valid instant.
func ParseExpiry(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseExpiryString(strings.TrimSpace(s))
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return parseEpoch(n)
	}

	return time.Time{}, false
}

func parseExpiryString(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return endOfDay(t), true
		}
	}

	// Numeric strings occur when an exporter stringifies epoch timestamps.
	if n, err := strconv.ParseFloat(s, 64); err == nil && n > 1e8 {
		return parseEpoch(n)
	}

	return time.Time{}, false
}

func parseEpoch(n float64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n >= epochMillisThreshold {
		return time.UnixMilli(int64(n)), true
	}
	return time.Unix(int64(n), 0), true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
