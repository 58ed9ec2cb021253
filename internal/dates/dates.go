// Package dates provides calendar-day helpers. All planning logic in
// daykeep operates on local calendar days identified by ISO strings
// like "2026-09-01".
package dates

import "time"

// ISOLayout is the layout for ISO calendar-day strings.
const ISOLayout = "2006-01-02"

// ISO formats a time as an ISO calendar-day string.
func ISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// ParseISO parses an ISO calendar-day string in the local time zone.
func ParseISO(value string) (time.Time, error) {
	return time.ParseInLocation(ISOLayout, value, time.Local)
}

// StartOfDay truncates a time to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t time.Time, now time.Time) bool {
	return SameDay(t, now)
}

// AddDays returns t shifted by the given number of calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
