package query

import (
	"strings"
	"time"

	"github.com/runnerr0/focuslog/internal/storage"
)

const dateLayout = "2006-01-02"

// DateRange recognises the first date phrase contained in lower (an already
// lowercased query) and returns its range and the phrase that matched.
// Phrases are tried in a fixed order; weeks start on Monday.
func DateRange(lower string, now time.Time) (storage.Range, string, bool) {
	loc := now.Location()
	today := startOfDay(now)

	switch {
	case strings.Contains(lower, "today"):
		return storage.Range{Start: today}, "today", true

	case strings.Contains(lower, "yesterday"):
		y := today.AddDate(0, 0, -1)
		return storage.Range{Start: y, End: endOfDay(y)}, "yesterday", true

	case strings.Contains(lower, "last hour"):
		return storage.Range{Start: now.Add(-time.Hour)}, "last hour", true

	case strings.Contains(lower, "last 24 hours"):
		return storage.Range{Start: now.Add(-24 * time.Hour)}, "last 24 hours", true

	case strings.Contains(lower, "this week"):
		return storage.Range{Start: startOfWeek(today)}, "this week", true

	case strings.Contains(lower, "last week"):
		start := startOfWeek(today).AddDate(0, 0, -7)
		return storage.Range{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}, "last week", true
	}

	// A marker with nothing after it ends date recognition altogether; a
	// marker followed by an unparseable token only skips that marker.
	d, ok, bare := dateAfter(lower, "after:", loc)
	if bare {
		return storage.Range{}, "", false
	}
	if ok {
		return storage.Range{Start: d}, "after:" + d.Format(dateLayout), true
	}
	if d, ok, _ := dateAfter(lower, "before:", loc); ok {
		return storage.Range{End: endOfDay(d)}, "before:" + d.Format(dateLayout), true
	}

	return storage.Range{}, "", false
}

// dateAfter parses the first whitespace-delimited token following marker
// as YYYY-MM-DD at local midnight. bare reports a marker with no token
// after it.
func dateAfter(lower, marker string, loc *time.Location) (d time.Time, ok, bare bool) {
	idx := strings.Index(lower, marker)
	if idx < 0 {
		return time.Time{}, false, false
	}
	fields := strings.Fields(lower[idx+len(marker):])
	if len(fields) == 0 {
		return time.Time{}, false, true
	}
	d, err := time.ParseInLocation(dateLayout, fields[0], loc)
	if err != nil {
		return time.Time{}, false, false
	}
	return d, true, false
}

// ParseDay parses YYYY-MM-DD and returns that local calendar day as a
// closed range.
func ParseDay(date string, loc *time.Location) (storage.Range, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return storage.Range{}, err
	}
	return storage.Range{Start: d, End: endOfDay(d)}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
