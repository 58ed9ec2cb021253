package plan

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/daykeep/daykeep/internal/dates"
)

// TodayTasks returns scheduled tasks due on the same calendar day as
// now, excluding completed ones.
func TodayTasks(s State, now time.Time) []Task {
	return filterTasks(s.Tasks, func(t Task) bool {
		return t.Location == LocationScheduled &&
			t.Status != StatusCompleted &&
			t.DueDate != nil && dates.SameDay(*t.DueDate, now)
	})
}

// OverdueTasks returns scheduled tasks due strictly before today that
// are not completed.
func OverdueTasks(s State, now time.Time) []Task {
	today := dates.StartOfDay(now)
	return filterTasks(s.Tasks, func(t Task) bool {
		return t.Location == LocationScheduled &&
			t.Status != StatusCompleted &&
			t.DueDate != nil && t.DueDate.Before(today)
	})
}

// UpcomingTasks returns tasks due strictly after today that are not
// completed, ordered soonest first.
func UpcomingTasks(s State, now time.Time) []Task {
	endOfToday := dates.StartOfDay(now).AddDate(0, 0, 1)
	upcoming := filterTasks(s.Tasks, func(t Task) bool {
		return t.Status != StatusCompleted &&
			t.DueDate != nil && !t.DueDate.Before(endOfToday)
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(*upcoming[j].DueDate)
	})
	return upcoming
}

// InboxTasks returns captured tasks that have not been committed to a
// date or finished.
func InboxTasks(s State) []Task {
	return filterTasks(s.Tasks, func(t Task) bool {
		return t.Location == LocationInbox && !t.Status.IsTerminal()
	})
}

// AgingTasks returns inbox tasks that have sat unconfirmed for at least
// TaskAgingDays days. These are surfaced for triage during the daily
// planning ritual.
func AgingTasks(s State, now time.Time) []Task {
	cutoff := dates.StartOfDay(now).AddDate(0, 0, -s.TaskAgingDays)
	return filterTasks(s.Tasks, func(t Task) bool {
		return t.Location == LocationInbox &&
			!t.Status.IsTerminal() &&
			!t.ConfirmedForToday &&
			t.CreatedAt.Before(cutoff)
	})
}

// CompletedTasks returns completed tasks, most recently completed first.
func CompletedTasks(s State) []Task {
	completed := filterTasks(s.Tasks, func(t Task) bool {
		return t.Status == StatusCompleted
	})
	sort.SliceStable(completed, func(i, j int) bool {
		ti, tj := completed[i].CompletedAt, completed[j].CompletedAt
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})
	return completed
}

// TasksByCategory groups tasks by category id. Tasks with no category
// are grouped under the empty key.
func TasksByCategory(s State) map[string][]Task {
	groups := make(map[string][]Task)
	for _, t := range s.Tasks {
		groups[t.Category] = append(groups[t.Category], t)
	}
	return groups
}

// HabitsDueOn returns habits whose frequency includes the given day.
func HabitsDueOn(s State, now time.Time) []Habit {
	weekday := int(now.Weekday())
	due := make([]Habit, 0, len(s.Habits))
	for _, h := range s.Habits {
		if habitDueOn(h, weekday) {
			due = append(due, h)
		}
	}
	return due
}

func habitDueOn(h Habit, weekday int) bool {
	switch h.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekdays:
		return weekday >= 1 && weekday <= 5
	case FrequencyWeekends:
		return weekday == 0 || weekday == 6
	case FrequencyCustom:
		for _, d := range h.CustomDays {
			if d == weekday {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// DailyStats summarizes one day of planning and progress.
type DailyStats struct {
	TasksCompleted    int
	TasksDue          int
	HabitsCompleted   int
	HabitsTotal       int
	CurrentStreak     int
	ProductivityScore int

	// ScheduledMinutes is the capacity committed through the planning
	// ritual; AvailableMinutes is daily capacity minus today's fixed
	// commitments.
	ScheduledMinutes int
	AvailableMinutes int
	IsOverbooked     bool
}

// Stats computes the daily summary for the calendar day containing now.
func Stats(s State, now time.Time) DailyStats {
	today := dates.ISO(now)

	var stats DailyStats
	stats.TasksDue = len(TodayTasks(s, now))
	for _, t := range s.Tasks {
		if t.Status == StatusCompleted && t.CompletedAt != nil && dates.SameDay(*t.CompletedAt, now) {
			stats.TasksCompleted++
		}
	}

	for _, h := range HabitsDueOn(s, now) {
		stats.HabitsTotal++
		if h.CompletedOn(today) {
			stats.HabitsCompleted++
		}
	}

	stats.CurrentStreak = taskStreak(s, now)
	stats.ProductivityScore = ProductivityScore(
		stats.TasksCompleted, stats.TasksDue+stats.TasksCompleted,
		stats.HabitsCompleted, stats.HabitsTotal,
	)

	stats.ScheduledMinutes = ScheduledMinutes(s, now)
	stats.AvailableMinutes = AvailableMinutes(s, now)
	stats.IsOverbooked = stats.ScheduledMinutes > stats.AvailableMinutes
	return stats
}

// ScheduledMinutes sums the estimated durations of today's
// not-yet-completed tasks. A task due today commits its estimate as
// soon as it exists; confirmation marks the planning review but does
// not gate capacity accounting.
func ScheduledMinutes(s State, now time.Time) int {
	var total int
	for _, t := range TodayTasks(s, now) {
		total += t.EstimatedDuration
	}
	return total
}

// AvailableMinutes returns the daily capacity after subtracting fixed
// commitments that recur on now's weekday. Never negative.
func AvailableMinutes(s State, now time.Time) int {
	available := s.DailyCapacityMinutes
	weekday := int(now.Weekday())
	for _, c := range s.FixedCommitments {
		for _, d := range c.Days {
			if d != weekday {
				continue
			}
			available -= minutesBetween(c.StartTime, c.EndTime)
			break
		}
	}
	if available < 0 {
		return 0
	}
	return available
}

// ProductivityScore blends task completion (60%) and habit completion
// (40%) into a 0-100 score. An empty denominator counts as fully done.
func ProductivityScore(tasksDone, tasksTotal, habitsDone, habitsTotal int) int {
	taskRate := 1.0
	if tasksTotal > 0 {
		taskRate = float64(tasksDone) / float64(tasksTotal)
	}
	habitRate := 1.0
	if habitsTotal > 0 {
		habitRate = float64(habitsDone) / float64(habitsTotal)
	}
	return int(math.Round((taskRate*0.6 + habitRate*0.4) * 100))
}

// taskStreak counts consecutive calendar days ending today where
// everything due that day was completed, walking backward at most a
// year. Days with nothing due keep the walk alive; the first day with
// an open due task breaks it. Days are keyed by due date, not by when
// the completion was stamped.
func taskStreak(s State, now time.Time) int {
	openOn := make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.DueDate != nil && t.Status != StatusCompleted {
			openOn[dates.ISO(*t.DueDate)] = true
		}
	}

	streak := 0
	day := dates.StartOfDay(now)
	for i := 0; i < 365; i++ {
		if openOn[dates.ISO(day)] {
			break
		}
		streak++
		day = dates.AddDays(day, -1)
	}
	if streak == 0 {
		return 0
	}
	return streak - 1
}

// minutesBetween returns the span in minutes between two HH:mm times.
// Malformed times contribute zero.
func minutesBetween(start, end string) int {
	s, okS := parseClock(start)
	e, okE := parseClock(end)
	if !okS || !okE || e < s {
		return 0
	}
	return e - s
}

func parseClock(value string) (int, bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
