package plan

import "time"

// Action is one variant of the closed set of state mutations. Every
// change to application state is expressed as an Action and applied
// through Reducer.Apply.
type Action interface {
	isAction()
}

// AddTask creates a task. The reducer assigns id, timestamps, and
// order; Status defaults to pending, Priority to medium, Type to soft,
// Location to inbox, and Recurrence to none when unset.
type AddTask struct {
	Title             string
	Description       string
	Priority          Priority
	Status            Status
	Type              TaskType
	Location          Location
	DueDate           *time.Time
	EstimatedDuration int
	Category          string
	Recurrence        Recurrence
	CustomRecurrence  []int
	ConfirmedForToday bool
}

// TaskUpdates configures fields to update on a task.
// Nil pointers mean "don't update this field".
type TaskUpdates struct {
	Title             *string
	Description       *string
	Priority          *Priority
	Status            *Status
	Type              *TaskType
	Location          *Location
	DueDate           *time.Time
	EstimatedDuration *int
	Category          *string
	ConfirmedForToday *bool
	Order             *int
}

// UpdateTask applies partial updates to one task.
type UpdateTask struct {
	ID      string
	Updates TaskUpdates
}

// DeleteTask removes a task permanently.
type DeleteTask struct {
	ID string
}

// CompleteTask marks a task completed and stamps CompletedAt. Applying
// it to an already-completed task re-stamps CompletedAt; callers gate
// if they need single completion.
type CompleteTask struct {
	ID string
}

// SkipTask marks a task skipped.
type SkipTask struct {
	ID string
}

// RescheduleTask moves a task's due date. The first reschedule
// preserves OriginalDueDate; every reschedule increments
// RescheduleCount and records CarriedOverFrom as the day vacated.
type RescheduleTask struct {
	ID      string
	NewDate time.Time
}

// ReorderTasks replaces the task collection with a reordered copy.
type ReorderTasks struct {
	Tasks []Task
}

// AddHabit creates a habit with zero streaks and a full freeze
// allowance. MaxFreezes defaults to DefaultMaxFreezes when zero or
// negative.
type AddHabit struct {
	Name        string
	Description string
	Frequency   Frequency
	CustomDays  []int
	Goal        int
	StartDate   time.Time
	Color       string
	MaxFreezes  int
}

// CompleteHabit appends a completion date and advances the streak.
// The reducer does not check whether the date is already present;
// dispatching twice for the same day double-counts the streak. The
// caller gates with Habit.CompletedOn.
type CompleteHabit struct {
	ID   string
	Date string
}

// DeleteHabit removes a habit permanently.
type DeleteHabit struct {
	ID string
}

// UseStreakFreeze consumes one streak freeze without resetting the
// current streak. A no-op when no freezes remain.
type UseStreakFreeze struct {
	ID string
}

// AddTodoList creates an empty, unarchived todo list.
type AddTodoList struct {
	Name  string
	Color string
}

// AddTodoItem appends an unchecked item to a list.
type AddTodoItem struct {
	ListID string
	Text   string
}

// ToggleTodoItem flips an item's completion, stamping CompletedAt when
// checking and clearing it when unchecking.
type ToggleTodoItem struct {
	ListID string
	ItemID string
}

// DeleteTodoItem removes an item from a list.
type DeleteTodoItem struct {
	ListID string
	ItemID string
}

// ArchiveTodoList retires a list from active views without deleting it.
type ArchiveTodoList struct {
	ID string
}

// AddTimeBlock creates a time block.
type AddTimeBlock struct {
	TaskID    string
	StartTime string
	EndTime   string
	Title     string
	Color     string
}

// TimeBlockUpdates configures fields to update on a time block.
type TimeBlockUpdates struct {
	TaskID    *string
	StartTime *string
	EndTime   *string
	Title     *string
	Color     *string
}

// UpdateTimeBlock applies partial updates to one time block.
type UpdateTimeBlock struct {
	ID      string
	Updates TimeBlockUpdates
}

// DeleteTimeBlock removes a time block.
type DeleteTimeBlock struct {
	ID string
}

// AddFixedCommitment creates a recurring calendar block.
type AddFixedCommitment struct {
	Name      string
	StartTime string
	EndTime   string
	Days      []int
}

// FixedCommitmentUpdates configures fields to update on a commitment.
type FixedCommitmentUpdates struct {
	Name      *string
	StartTime *string
	EndTime   *string
	Days      *[]int
}

// UpdateFixedCommitment applies partial updates to one commitment.
type UpdateFixedCommitment struct {
	ID      string
	Updates FixedCommitmentUpdates
}

// DeleteFixedCommitment removes a commitment.
type DeleteFixedCommitment struct {
	ID string
}

// SetTheme switches between "light" and "dark".
type SetTheme struct {
	Theme string
}

// SetFocusMode toggles focus mode.
type SetFocusMode struct {
	Enabled bool
}

// SetCurrentTask points focus mode at a task; empty id clears it.
type SetCurrentTask struct {
	ID string
}

// SetCapacitySettings updates the planning settings. Nil pointers mean
// "don't update this field".
type SetCapacitySettings struct {
	DailyCapacityMinutes *int
	TaskAgingDays        *int
	WorkingHours         *WorkingHours
}

// ImportData merges imported collections into state: tasks, todo
// lists, and habits are concatenated without deduplication; a non-nil
// category set replaces the existing one outright. Callers pre-dedupe
// if idempotent import is required.
type ImportData struct {
	Tasks      []Task
	TodoLists  []TodoList
	Habits     []Habit
	Categories []Category
}

// LoadState replaces the whole state, used when hydrating from the
// durable store at startup.
type LoadState struct {
	State State
}

func (AddTask) isAction()               {}
func (UpdateTask) isAction()            {}
func (DeleteTask) isAction()            {}
func (CompleteTask) isAction()          {}
func (SkipTask) isAction()              {}
func (RescheduleTask) isAction()        {}
func (ReorderTasks) isAction()          {}
func (AddHabit) isAction()              {}
func (CompleteHabit) isAction()         {}
func (DeleteHabit) isAction()           {}
func (UseStreakFreeze) isAction()       {}
func (AddTodoList) isAction()           {}
func (AddTodoItem) isAction()           {}
func (ToggleTodoItem) isAction()        {}
func (DeleteTodoItem) isAction()        {}
func (ArchiveTodoList) isAction()       {}
func (AddTimeBlock) isAction()          {}
func (UpdateTimeBlock) isAction()       {}
func (DeleteTimeBlock) isAction()       {}
func (AddFixedCommitment) isAction()    {}
func (UpdateFixedCommitment) isAction() {}
func (DeleteFixedCommitment) isAction() {}
func (SetTheme) isAction()              {}
func (SetFocusMode) isAction()          {}
func (SetCurrentTask) isAction()        {}
func (SetCapacitySettings) isAction()   {}
func (ImportData) isAction()            {}
func (LoadState) isAction()             {}
