package store

import (
	"testing"

	"github.com/daykeep/daykeep/plan"
)

func TestFlatStore_Roundtrip(t *testing.T) {
	flat, err := OpenFlat(t.TempDir())
	if err != nil {
		t.Fatalf("open flat: %v", err)
	}

	if flat.Has() {
		t.Error("fresh flat store should have no state")
	}

	state := plan.NewState()
	state.Tasks = []plan.Task{{ID: "t-1", Title: "a"}}
	if err := flat.Write(state); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !flat.Has() {
		t.Error("flat store should report state after write")
	}
	got, err := flat.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != "t-1" {
		t.Errorf("tasks = %+v", got.Tasks)
	}
}

func TestMigrate_OneShot(t *testing.T) {
	dir := t.TempDir()

	flat, err := OpenFlat(dir)
	if err != nil {
		t.Fatalf("open flat: %v", err)
	}
	state := plan.NewState()
	state.Tasks = []plan.Task{{ID: "t-1", Title: "migrated", Priority: plan.PriorityMedium, Status: plan.StatusPending, Type: plan.TypeSoft, Location: plan.LocationInbox, Recurrence: plan.RecurrenceNone}}
	state.Theme = "light"
	if err := flat.Write(state); err != nil {
		t.Fatalf("write flat: %v", err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	migrated, err := Migrate(s, flat, nil)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !migrated {
		t.Fatal("expected migration to run")
	}

	loaded, err := s.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].Title != "migrated" {
		t.Errorf("tasks = %+v", loaded.Tasks)
	}
	if loaded.Theme != "light" {
		t.Errorf("theme = %q", loaded.Theme)
	}

	// A second call is a no-op: the structured store now has records.
	state.Tasks = append(state.Tasks, plan.Task{ID: "t-2", Title: "should not appear"})
	if err := flat.Write(state); err != nil {
		t.Fatalf("rewrite flat: %v", err)
	}
	migrated, err = Migrate(s, flat, nil)
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if migrated {
		t.Error("migration ran twice")
	}
	loaded, _ = s.LoadState()
	if len(loaded.Tasks) != 1 {
		t.Errorf("second migration imported data: %d tasks", len(loaded.Tasks))
	}
}

func TestMigrate_NothingToMigrate(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	flat, err := OpenFlat(dir)
	if err != nil {
		t.Fatalf("open flat: %v", err)
	}

	migrated, err := Migrate(s, flat, nil)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated {
		t.Error("migration ran with no flat state")
	}
}
