package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/daykeep/daykeep/plan"
	"github.com/daykeep/daykeep/store"
)

func testOptions(dir string) Options {
	n := 0
	return Options{
		DataDir: dir,
		Reducer: plan.Reducer{
			Now: func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local) },
			NewID: func() string {
				n++
				return fmt.Sprintf("id-%d", n)
			},
		},
	}
}

func TestOpen_FirstRunSeedsDefaults(t *testing.T) {
	a, err := Open(testOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()

	state := a.State()
	if len(state.Categories) != 5 {
		t.Errorf("categories = %d", len(state.Categories))
	}
	if state.DailyCapacityMinutes != plan.DefaultDailyCapacityMinutes {
		t.Errorf("capacity = %d", state.DailyCapacityMinutes)
	}
}

func TestOpen_ConfigDefaultsSeedOnlyFirstRun(t *testing.T) {
	dir := t.TempDir()

	opts := testOptions(dir)
	opts.Defaults = Defaults{
		DailyCapacityMinutes: 300,
		TaskAgingDays:        5,
		WorkingHours:         &plan.WorkingHours{Start: "08:00", End: "16:00"},
	}
	a, err := Open(opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	state := a.State()
	if state.DailyCapacityMinutes != 300 || state.TaskAgingDays != 5 {
		t.Errorf("seeded settings = %d/%d, want 300/5", state.DailyCapacityMinutes, state.TaskAgingDays)
	}
	if state.WorkingHours.Start != "08:00" || state.WorkingHours.End != "16:00" {
		t.Errorf("seeded hours = %+v", state.WorkingHours)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Stored settings win over changed configuration on later runs.
	opts = testOptions(dir)
	opts.Defaults = Defaults{DailyCapacityMinutes: 999}
	b, err := Open(opts)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	if got := b.State().DailyCapacityMinutes; got != 300 {
		t.Errorf("capacity after reopen = %d, want 300", got)
	}
}

func TestDispatch_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	a, err := Open(testOptions(dir))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	a.Dispatch(plan.AddTask{Title: "persisted"})
	a.Dispatch(plan.AddHabit{Name: "run"})
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := Open(testOptions(dir))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	state := b.State()
	if len(state.Tasks) != 1 || state.Tasks[0].Title != "persisted" {
		t.Errorf("tasks = %+v", state.Tasks)
	}
	if len(state.Habits) != 1 || state.Habits[0].Name != "run" {
		t.Errorf("habits = %+v", state.Habits)
	}
}

func TestDispatch_EnqueuesSyncItemsSynchronously(t *testing.T) {
	a, err := Open(testOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()

	a.Dispatch(plan.AddTask{Title: "a"})

	// The queue item must exist before Dispatch returns, without
	// waiting for background persistence.
	items, err := a.Store().SyncQueue()
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].Type != store.ItemTask || items[0].Action != store.ActionCreate {
		t.Errorf("item = %+v", items[0])
	}

	a.Dispatch(plan.CompleteTask{ID: "id-1"})
	a.Dispatch(plan.DeleteTask{ID: "id-1"})

	items, _ = a.Store().SyncQueue()
	if len(items) != 3 {
		t.Fatalf("items = %d", len(items))
	}
	if items[1].Action != store.ActionUpdate || items[2].Action != store.ActionDelete {
		t.Errorf("actions = %s, %s", items[1].Action, items[2].Action)
	}
}

func TestDispatch_LocalOnlyActionsAreNotQueued(t *testing.T) {
	a, err := Open(testOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()

	a.Dispatch(plan.SetTheme{Theme: "light"})
	a.Dispatch(plan.SetFocusMode{Enabled: true})
	capacity := 300
	a.Dispatch(plan.SetCapacitySettings{DailyCapacityMinutes: &capacity})

	count, err := a.Store().SyncQueueCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("settings actions queued %d sync items", count)
	}
}

func TestDispatch_DeleteRemovesStoredRecord(t *testing.T) {
	dir := t.TempDir()
	a, err := Open(testOptions(dir))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	a.Dispatch(plan.AddTask{Title: "doomed"})
	a.Flush()
	a.Dispatch(plan.DeleteTask{ID: "id-1"})
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := Open(testOptions(dir))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()
	if got := len(b.State().Tasks); got != 0 {
		t.Errorf("deleted task survived reopen: %d tasks", got)
	}
}

func TestOpen_MigratesFlatStore(t *testing.T) {
	dir := t.TempDir()

	flat, err := store.OpenFlat(dir)
	if err != nil {
		t.Fatalf("open flat: %v", err)
	}
	legacy := plan.NewState()
	legacy.Tasks = []plan.Task{{ID: "old-1", Title: "from the flat store", Priority: plan.PriorityMedium, Status: plan.StatusPending, Type: plan.TypeSoft, Location: plan.LocationInbox, Recurrence: plan.RecurrenceNone}}
	if err := flat.Write(legacy); err != nil {
		t.Fatalf("write flat: %v", err)
	}

	a, err := Open(testOptions(dir))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()

	state := a.State()
	if len(state.Tasks) != 1 || state.Tasks[0].ID != "old-1" {
		t.Errorf("migrated tasks = %+v", state.Tasks)
	}
}

func TestDispatch_WritesFlatMirror(t *testing.T) {
	dir := t.TempDir()
	a, err := Open(testOptions(dir))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	a.Dispatch(plan.AddTask{Title: "mirrored"})
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	flat, err := store.OpenFlat(dir)
	if err != nil {
		t.Fatalf("open flat: %v", err)
	}
	mirrored, err := flat.Read()
	if err != nil {
		t.Fatalf("read flat: %v", err)
	}
	if len(mirrored.Tasks) != 1 || mirrored.Tasks[0].Title != "mirrored" {
		t.Errorf("flat mirror = %+v", mirrored.Tasks)
	}
}
