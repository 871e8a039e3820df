package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeWindow restricts the rows a processor aggregates to those whose
// timestamp column falls within [Start, End]. Either bound may be nil.
type TimeWindow struct {
	// Column is the name of the timestamp column.
	Column string

	// Start is the inclusive lower bound.
	Start *time.Time

	// End is the inclusive upper bound.
	End *time.Time
}

// Active reports whether the window filters anything: it needs a column
// and at least one bound.
func (w TimeWindow) Active() bool {
	return w.Column != "" && (w.Start != nil || w.End != nil)
}

// Contains reports whether t lies inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// timestampLayouts are tried in order by ParseTimestamp. Layouts without a
// zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	// Slash and dash dates are day first.
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
}

// excelEpoch is day zero of the 1900 spreadsheet date system, shifted to
// absorb the fictitious 1900-02-29.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseTimestamp parses a cell or form value into a time. It accepts the
// common ISO and day-first layouts as well as spreadsheet serial dates
// (e.g. "45292.5"). The second result is false when s is not a timestamp.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < 1 || serial > 2958465 || math.IsNaN(serial) {
		return time.Time{}, false
	}
	days := math.Floor(serial)
	secs := math.Round((serial - days) * 86400)
	return excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second), true
}
