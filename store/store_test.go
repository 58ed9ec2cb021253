package store

import (
	"errors"
	"testing"
	"time"

	"github.com/daykeep/daykeep/plan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_TaskRoundtrip(t *testing.T) {
	s := openTestStore(t)

	due := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	task := plan.Task{
		ID:                "t-1",
		Title:             "Write report",
		Priority:          plan.PriorityHigh,
		Status:            plan.StatusPending,
		Type:              plan.TypeHard,
		Location:          plan.LocationScheduled,
		DueDate:           &due,
		EstimatedDuration: 90,
		Category:          "1",
		Recurrence:        plan.RecurrenceNone,
		CreatedAt:         due,
		UpdatedAt:         due,
	}
	if err := s.PutTask(task); err != nil {
		t.Fatalf("put task: %v", err)
	}

	got, err := s.Task("t-1")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Priority != task.Priority || got.EstimatedDuration != 90 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date mismatch: %v", got.DueDate)
	}

	// Put with the same id replaces.
	task.Title = "Rewritten"
	if err := s.PutTask(task); err != nil {
		t.Fatalf("replace task: %v", err)
	}
	got, err = s.Task("t-1")
	if err != nil {
		t.Fatalf("get replaced task: %v", err)
	}
	if got.Title != "Rewritten" {
		t.Errorf("expected replaced title, got %q", got.Title)
	}

	if _, err := s.Task("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_TaskIndexes(t *testing.T) {
	s := openTestStore(t)

	put := func(id string, location plan.Location, status plan.Status) {
		t.Helper()
		err := s.PutTask(plan.Task{ID: id, Title: id, Location: location, Status: status, Priority: plan.PriorityMedium, Type: plan.TypeSoft, Recurrence: plan.RecurrenceNone})
		if err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	put("a", plan.LocationInbox, plan.StatusPending)
	put("b", plan.LocationScheduled, plan.StatusPending)
	put("c", plan.LocationScheduled, plan.StatusCompleted)

	inbox, err := s.TasksByLocation(plan.LocationInbox)
	if err != nil {
		t.Fatalf("by location: %v", err)
	}
	if len(inbox) != 1 || inbox[0].ID != "a" {
		t.Errorf("inbox = %+v", inbox)
	}

	completed, err := s.TasksByStatus(plan.StatusCompleted)
	if err != nil {
		t.Fatalf("by status: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != "c" {
		t.Errorf("completed = %+v", completed)
	}

	// The index columns follow updates.
	put("a", plan.LocationScheduled, plan.StatusPending)
	inbox, err = s.TasksByLocation(plan.LocationInbox)
	if err != nil {
		t.Fatalf("by location after move: %v", err)
	}
	if len(inbox) != 0 {
		t.Errorf("expected empty inbox after move, got %+v", inbox)
	}
}

func TestStore_DecodeRejectsUnknownFields(t *testing.T) {
	s := openTestStore(t)

	// A record written by some future schema must fail loudly, not
	// silently drop fields.
	_, err := s.db.Exec(
		"INSERT INTO habits (id, data) VALUES (?, ?)",
		"h-1", `{"id":"h-1","name":"run","futureField":true}`,
	)
	if err != nil {
		t.Fatalf("insert raw record: %v", err)
	}

	if _, err := s.Habits(); err == nil {
		t.Error("expected decode error for unknown field, got nil")
	}
}

func TestStore_Empty(t *testing.T) {
	s := openTestStore(t)

	empty, err := s.Empty()
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if !empty {
		t.Error("new store should be empty")
	}

	if err := s.PutCategory(plan.Category{ID: "1", Name: "Work", Color: "hsl(186, 100%, 50%)"}); err != nil {
		t.Fatalf("put category: %v", err)
	}
	empty, err = s.Empty()
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if empty {
		t.Error("store with a record should not be empty")
	}
}

func TestStore_SaveAndLoadState(t *testing.T) {
	s := openTestStore(t)

	state := plan.NewState()
	state.Tasks = []plan.Task{{ID: "t-1", Title: "a", Priority: plan.PriorityMedium, Status: plan.StatusPending, Type: plan.TypeSoft, Location: plan.LocationInbox, Recurrence: plan.RecurrenceNone}}
	state.Habits = []plan.Habit{{ID: "h-1", Name: "run", Frequency: plan.FrequencyDaily, CompletedDates: []string{}, MissedDates: []string{}, MaxFreezes: 3, StreakFreezes: 3}}
	state.Theme = "light"
	state.DailyCapacityMinutes = 300
	state.FocusMode = true
	state.CurrentTaskID = "t-1"

	if err := s.SaveState(state); err != nil {
		t.Fatalf("save state: %v", err)
	}

	loaded, err := s.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].ID != "t-1" {
		t.Errorf("tasks = %+v", loaded.Tasks)
	}
	if len(loaded.Habits) != 1 || loaded.Habits[0].Name != "run" {
		t.Errorf("habits = %+v", loaded.Habits)
	}
	if loaded.Theme != "light" || loaded.DailyCapacityMinutes != 300 {
		t.Errorf("settings not restored: theme=%q capacity=%d", loaded.Theme, loaded.DailyCapacityMinutes)
	}
	if !loaded.FocusMode || loaded.CurrentTaskID != "t-1" {
		t.Errorf("focus state not restored: %v %q", loaded.FocusMode, loaded.CurrentTaskID)
	}
	if len(loaded.Categories) != 5 {
		t.Errorf("expected seeded categories to persist, got %d", len(loaded.Categories))
	}
}

func TestStore_LoadStateOnEmptyStoreUsesDefaults(t *testing.T) {
	s := openTestStore(t)

	state, err := s.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if state.Theme != plan.DefaultTheme {
		t.Errorf("theme = %q", state.Theme)
	}
	if state.DailyCapacityMinutes != plan.DefaultDailyCapacityMinutes {
		t.Errorf("capacity = %d", state.DailyCapacityMinutes)
	}
	if len(state.Categories) != 5 {
		t.Errorf("expected 5 default categories, got %d", len(state.Categories))
	}
}
