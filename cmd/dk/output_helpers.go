package main

import (
	"fmt"
	"time"

	"github.com/daykeep/daykeep/internal/dates"
	"github.com/daykeep/daykeep/plan"
)

// shortID abbreviates record ids for table output. Full ids are always
// accepted as input.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseDay parses a date argument: "today", "tomorrow", or an ISO
// calendar day.
func parseDay(value string) (time.Time, error) {
	now := time.Now()
	switch value {
	case "today":
		return dates.StartOfDay(now), nil
	case "tomorrow":
		return dates.StartOfDay(dates.AddDays(now, 1)), nil
	}
	day, err := dates.ParseISO(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, 'today', or 'tomorrow'", value)
	}
	return day, nil
}

func categoryName(state plan.State, id string) string {
	for _, c := range state.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

func filterByLocation(tasks []plan.Task, location plan.Location) []plan.Task {
	filtered := make([]plan.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Location == location {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func filterByStatus(tasks []plan.Task, status plan.Status) []plan.Task {
	filtered := make([]plan.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
