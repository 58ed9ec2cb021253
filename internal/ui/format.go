package ui

import (
	"fmt"
	"time"

	"github.com/daykeep/daykeep/internal/dates"
)

// FormatMinutes renders a duration in minutes as "1h 30m", "45m", or
// "2h".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// FormatDay renders a time as a calendar day, substituting "today",
// "tomorrow", and "yesterday" for the nearest days.
func FormatDay(t time.Time, now time.Time) string {
	switch {
	case dates.SameDay(t, now):
		return "today"
	case dates.SameDay(t, dates.AddDays(now, 1)):
		return "tomorrow"
	case dates.SameDay(t, dates.AddDays(now, -1)):
		return "yesterday"
	default:
		return dates.ISO(t)
	}
}
