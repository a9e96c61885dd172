package domain

import "time"

// DateLayout is the canonical calendar-date format used for schedule keys and storage.
const DateLayout = "2006-01-02"

// CivilDate returns the calendar date of t (in t's own location) as UTC midnight.
// All day arithmetic goes through civil dates so that AddDate never crosses a DST edge.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats t's calendar date as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return CivilDate(t), nil
}

// MaxDate returns the later of a and b.
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
