// FILE: eventweaver/src/internal/source/timestamp.go
package source

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// isoLayouts are tried in order when no explicit format is
// configured. They cover RFC 3339 with and without sub-seconds plus
// the common timezone-less variants.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp parses value with the given reference layout, or
// with the ISO 8601 fallbacks when layout is empty.
func parseTimestamp(value, layout string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if layout != "" {
		ts, err := time.Parse(layout, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("could not parse timestamp '%s' with format '%s'", value, layout)
		}
		return ts, nil
	}
	for _, l := range isoLayouts {
		if ts, err := time.Parse(l, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse timestamp '%s'", value)
}

// fromUnixSeconds converts fractional epoch seconds.
func fromUnixSeconds(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
