package store

import (
	"errors"
	"fmt"

	"github.com/daykeep/daykeep/plan"
)

// settingsKey is the metadata key holding the non-collection parts of
// state.
const settingsKey = "settings"

// settingsRecord carries the scalar state fields that have no
// collection table of their own.
type settingsRecord struct {
	FocusMode            bool              `json:"focusMode"`
	CurrentTaskID        string            `json:"currentTaskId"`
	Theme                string            `json:"theme"`
	DailyCapacityMinutes int               `json:"dailyCapacityMinutes"`
	TaskAgingDays        int               `json:"taskAgingDays"`
	WorkingHours         plan.WorkingHours `json:"workingHours"`
}

// HasSettings reports whether a settings record has been persisted,
// distinguishing a fresh database from one whose settings were written
// out. First-run configuration defaults apply only while this is false.
func (s *Store) HasSettings() (bool, error) {
	_, err := s.Metadata(settingsKey)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LoadState assembles the full application state from the structured
// store. Missing settings fall back to defaults, so a database created
// by an older build still loads.
func (s *Store) LoadState() (plan.State, error) {
	state := plan.NewState()

	tasks, err := s.Tasks()
	if err != nil {
		return plan.State{}, err
	}
	todoLists, err := s.TodoLists()
	if err != nil {
		return plan.State{}, err
	}
	habits, err := s.Habits()
	if err != nil {
		return plan.State{}, err
	}
	categories, err := s.Categories()
	if err != nil {
		return plan.State{}, err
	}
	timeBlocks, err := s.TimeBlocks()
	if err != nil {
		return plan.State{}, err
	}
	commitments, err := s.FixedCommitments()
	if err != nil {
		return plan.State{}, err
	}

	if tasks != nil {
		state.Tasks = tasks
	}
	if todoLists != nil {
		state.TodoLists = todoLists
	}
	if habits != nil {
		state.Habits = habits
	}
	if len(categories) > 0 {
		state.Categories = categories
	}
	if timeBlocks != nil {
		state.TimeBlocks = timeBlocks
	}
	if commitments != nil {
		state.FixedCommitments = commitments
	}

	raw, err := s.Metadata(settingsKey)
	if errors.Is(err, ErrNotFound) {
		return state, nil
	}
	if err != nil {
		return plan.State{}, err
	}
	var settings settingsRecord
	if err := decodeRecord([]byte(raw), &settings); err != nil {
		return plan.State{}, fmt.Errorf("settings: %w", err)
	}
	state.FocusMode = settings.FocusMode
	state.CurrentTaskID = settings.CurrentTaskID
	state.Theme = settings.Theme
	state.DailyCapacityMinutes = settings.DailyCapacityMinutes
	state.TaskAgingDays = settings.TaskAgingDays
	state.WorkingHours = settings.WorkingHours
	return state, nil
}

// SaveState upserts every record in the state. Failures are collected
// rather than aborting the pass: one bad record must not stop the rest
// of the snapshot from landing. Records deleted from state are not
// removed here; deletion is the caller's responsibility since an upsert
// pass cannot distinguish "missing" from "untouched".
func (s *Store) SaveState(state plan.State) error {
	var errs []error
	for _, t := range state.Tasks {
		if err := s.PutTask(t); err != nil {
			errs = append(errs, err)
		}
	}
	for _, l := range state.TodoLists {
		if err := s.PutTodoList(l); err != nil {
			errs = append(errs, err)
		}
	}
	for _, h := range state.Habits {
		if err := s.PutHabit(h); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range state.Categories {
		if err := s.PutCategory(c); err != nil {
			errs = append(errs, err)
		}
	}
	for _, b := range state.TimeBlocks {
		if err := s.PutTimeBlock(b); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range state.FixedCommitments {
		if err := s.PutFixedCommitment(c); err != nil {
			errs = append(errs, err)
		}
	}

	settings := settingsRecord{
		FocusMode:            state.FocusMode,
		CurrentTaskID:        state.CurrentTaskID,
		Theme:                state.Theme,
		DailyCapacityMinutes: state.DailyCapacityMinutes,
		TaskAgingDays:        state.TaskAgingDays,
		WorkingHours:         state.WorkingHours,
	}
	data, err := encodeRecord(settings)
	if err != nil {
		errs = append(errs, err)
	} else if err := s.SetMetadata(settingsKey, string(data)); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
