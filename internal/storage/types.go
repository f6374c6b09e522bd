package storage

import (
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is the only format written to events.timestamp. It is
// fixed width and zero padded so string comparison orders chronologically.
const TimestampLayout = "2006-01-02T15:04:05Z"

// ErrNotFound is returned when an operation targets an event id that does
// not exist.
var ErrNotFound = errors.New("not found")

// Event is one recorded focus-change observation.
type Event struct {
	ID        int64
	Timestamp time.Time
	App       string
	Title     string
	Tags      string
	HasTags   bool
}

// AppStats is one row of the per-application usage summary.
type AppStats struct {
	App       string
	Count     int64
	FirstSeen time.Time
	LastSeen  time.Time
}

// Range is a timestamp window. A zero Start or End leaves that side open.
// Both bounds are inclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

// FormatTimestamp renders t in the stored representation.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp reads a stored timestamp. RFC 3339 values with an offset
// or fractional seconds are accepted so rows written by older builds still
// decode.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
	}
	return t.UTC(), nil
}
