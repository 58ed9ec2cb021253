package plan

import (
	"testing"
	"time"
)

// 2026-03-02 is a Monday.
var monday = day("2026-03-02")

func taskDue(id string, due time.Time, status Status) Task {
	d := due
	return Task{ID: id, Title: id, Status: status, Location: LocationScheduled, DueDate: &d}
}

func TestTaskViews(t *testing.T) {
	s := NewState()
	s.Tasks = []Task{
		taskDue("due-today", monday, StatusPending),
		taskDue("done-today", monday, StatusCompleted),
		taskDue("overdue", day("2026-02-27"), StatusPending),
		taskDue("upcoming", day("2026-03-05"), StatusPending),
		{ID: "inbox", Title: "inbox", Status: StatusPending, Location: LocationInbox, CreatedAt: monday},
		{ID: "someday", Title: "someday", Status: StatusPending, Location: LocationSomeday},
	}

	ids := func(tasks []Task) []string {
		out := make([]string, len(tasks))
		for i, task := range tasks {
			out[i] = task.ID
		}
		return out
	}

	if got := ids(TodayTasks(s, monday)); len(got) != 1 || got[0] != "due-today" {
		t.Errorf("TodayTasks = %v", got)
	}
	if got := ids(OverdueTasks(s, monday)); len(got) != 1 || got[0] != "overdue" {
		t.Errorf("OverdueTasks = %v", got)
	}
	if got := ids(UpcomingTasks(s, monday)); len(got) != 1 || got[0] != "upcoming" {
		t.Errorf("UpcomingTasks = %v", got)
	}
	if got := ids(InboxTasks(s)); len(got) != 1 || got[0] != "inbox" {
		t.Errorf("InboxTasks = %v", got)
	}
}

func TestUpcomingTasks_SortedSoonestFirst(t *testing.T) {
	s := NewState()
	s.Tasks = []Task{
		taskDue("later", day("2026-03-10"), StatusPending),
		taskDue("sooner", day("2026-03-04"), StatusPending),
	}
	upcoming := UpcomingTasks(s, monday)
	if len(upcoming) != 2 || upcoming[0].ID != "sooner" {
		t.Errorf("unexpected order: %+v", upcoming)
	}
}

func TestAgingTasks(t *testing.T) {
	s := NewState()
	s.TaskAgingDays = 3
	s.Tasks = []Task{
		{ID: "fresh", Status: StatusPending, Location: LocationInbox, CreatedAt: day("2026-03-01")},
		{ID: "stale", Status: StatusPending, Location: LocationInbox, CreatedAt: day("2026-02-20")},
		{ID: "stale-confirmed", Status: StatusPending, Location: LocationInbox, CreatedAt: day("2026-02-20"), ConfirmedForToday: true},
		{ID: "stale-done", Status: StatusCompleted, Location: LocationInbox, CreatedAt: day("2026-02-20")},
	}

	aging := AgingTasks(s, monday)
	if len(aging) != 1 || aging[0].ID != "stale" {
		t.Errorf("AgingTasks = %+v", aging)
	}
}

func TestScheduledMinutes_OverbookProgression(t *testing.T) {
	s := NewState()
	dueToday := func(id string, minutes int) Task {
		due := monday
		return Task{ID: id, Status: StatusPending, Location: LocationScheduled, DueDate: &due, EstimatedDuration: minutes}
	}

	for _, step := range []struct {
		add        Task
		total      int
		overbooked bool
	}{
		{dueToday("a", 60), 60, false},
		{dueToday("b", 240), 300, false},
		{dueToday("c", 120), 420, false},
		{dueToday("d", 90), 510, true},
	} {
		s.Tasks = append(s.Tasks, step.add)
		stats := Stats(s, monday)
		if stats.ScheduledMinutes != step.total {
			t.Errorf("after adding %s: scheduled %d, want %d", step.add.ID, stats.ScheduledMinutes, step.total)
		}
		if stats.IsOverbooked != step.overbooked {
			t.Errorf("after adding %s: overbooked %v, want %v", step.add.ID, stats.IsOverbooked, step.overbooked)
		}
	}

	// Completing a task releases its committed minutes.
	s.Tasks[3].Status = StatusCompleted
	if got := ScheduledMinutes(s, monday); got != 420 {
		t.Errorf("scheduled after completion = %d, want 420", got)
	}
}

func TestScheduledMinutes_CountsUnconfirmedTasks(t *testing.T) {
	// Adding a task due today commits its estimate immediately; no
	// confirmation step is required for capacity accounting.
	r := testReducer(monday)
	due := monday
	s := r.Apply(NewState(), AddTask{Title: "deep work", DueDate: &due, Location: LocationScheduled, EstimatedDuration: 60})

	if got := ScheduledMinutes(s, monday); got != 60 {
		t.Errorf("scheduled = %d, want 60", got)
	}
	if stats := Stats(s, monday); stats.ScheduledMinutes != 60 {
		t.Errorf("stats scheduled = %d, want 60", stats.ScheduledMinutes)
	}
}

func TestAvailableMinutes_SubtractsCommitments(t *testing.T) {
	s := NewState()
	s.FixedCommitments = []FixedCommitment{
		{ID: "standup", Name: "standup", StartTime: "09:00", EndTime: "10:00", Days: []int{1, 2, 3, 4, 5}},
		{ID: "brunch", Name: "brunch", StartTime: "11:00", EndTime: "13:00", Days: []int{0, 6}},
	}

	if got := AvailableMinutes(s, monday); got != 420 {
		t.Errorf("Monday available = %d, want 420", got)
	}
	sunday := day("2026-03-01")
	if got := AvailableMinutes(s, sunday); got != 360 {
		t.Errorf("Sunday available = %d, want 360", got)
	}
}

func TestProductivityScore(t *testing.T) {
	for _, tc := range []struct {
		tasksDone, tasksTotal, habitsDone, habitsTotal int
		want                                           int
	}{
		{0, 0, 0, 0, 100},
		{2, 2, 2, 2, 100},
		{1, 2, 0, 0, 70},
		{0, 2, 1, 2, 20},
		{1, 3, 1, 4, 30},
	} {
		got := ProductivityScore(tc.tasksDone, tc.tasksTotal, tc.habitsDone, tc.habitsTotal)
		if got != tc.want {
			t.Errorf("ProductivityScore(%d/%d tasks, %d/%d habits) = %d, want %d",
				tc.tasksDone, tc.tasksTotal, tc.habitsDone, tc.habitsTotal, got, tc.want)
		}
	}
}

func TestStats_HabitsRespectFrequency(t *testing.T) {
	s := NewState()
	s.Habits = []Habit{
		{ID: "daily", Name: "daily", Frequency: FrequencyDaily, CompletedDates: []string{"2026-03-02"}},
		{ID: "weekday", Name: "weekday", Frequency: FrequencyWeekdays, CompletedDates: []string{}},
		{ID: "weekend", Name: "weekend", Frequency: FrequencyWeekends, CompletedDates: []string{}},
		{ID: "custom", Name: "custom", Frequency: FrequencyCustom, CustomDays: []int{3}, CompletedDates: []string{}},
	}

	stats := Stats(s, monday)
	if stats.HabitsTotal != 2 {
		t.Errorf("Monday habits total = %d, want 2 (daily + weekday)", stats.HabitsTotal)
	}
	if stats.HabitsCompleted != 1 {
		t.Errorf("Monday habits completed = %d, want 1", stats.HabitsCompleted)
	}
}

func TestTaskStreak(t *testing.T) {
	pendingDue := func(id string, due time.Time) Task {
		d := due
		return Task{ID: id, Status: StatusPending, DueDate: &d}
	}
	completedDue := func(id string, due time.Time) Task {
		d := due
		// Stamped well before the due date: the walk keys on due dates,
		// not completion timestamps.
		stamp := day("2026-01-15")
		return Task{ID: id, Status: StatusCompleted, DueDate: &d, CompletedAt: &stamp}
	}

	for _, tc := range []struct {
		name  string
		tasks []Task
		want  int
	}{
		{"open task due today", []Task{pendingDue("a", monday)}, 0},
		{
			"breaks at first open day",
			[]Task{
				completedDue("a", monday),
				pendingDue("b", day("2026-03-01")),
			},
			0,
		},
		{
			"completed and empty days both count",
			[]Task{
				completedDue("a", monday),
				completedDue("b", day("2026-03-01")),
				// Nothing due 2026-02-28; the walk keeps going.
				pendingDue("c", day("2026-02-27")),
			},
			2,
		},
		{
			"skipped due task is still open",
			[]Task{
				{ID: "a", Status: StatusSkipped, DueDate: ptrTime(monday)},
			},
			0,
		},
	} {
		s := NewState()
		s.Tasks = tc.tasks
		stats := Stats(s, monday)
		if stats.CurrentStreak != tc.want {
			t.Errorf("%s: streak = %d, want %d", tc.name, stats.CurrentStreak, tc.want)
		}
	}
}

func TestTaskStreak_NothingDueWalksToCap(t *testing.T) {
	// With no due tasks at all, every day counts until the 365-day
	// safety bound, minus the day-zero adjustment.
	s := NewState()
	if got := taskStreak(s, monday); got != 364 {
		t.Errorf("streak = %d, want 364", got)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestOverdueTasks_ScopedToScheduled(t *testing.T) {
	past := day("2026-02-20")
	s := NewState()
	s.Tasks = []Task{
		{ID: "inbox-past", Status: StatusPending, Location: LocationInbox, DueDate: &past},
		taskDue("scheduled-past", past, StatusPending),
	}

	got := OverdueTasks(s, monday)
	if len(got) != 1 || got[0].ID != "scheduled-past" {
		t.Errorf("OverdueTasks = %+v", got)
	}
}

func TestTasksByCategory(t *testing.T) {
	s := NewState()
	s.Tasks = []Task{
		{ID: "a", Category: "1"},
		{ID: "b", Category: "1"},
		{ID: "c", Category: "2"},
		{ID: "d"},
	}
	groups := TasksByCategory(s)
	if len(groups["1"]) != 2 || len(groups["2"]) != 1 || len(groups[""]) != 1 {
		t.Errorf("unexpected grouping: %v", groups)
	}
}
