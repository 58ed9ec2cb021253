// Package plan implements the daykeep application state: the domain
// model, the reducer that every mutation funnels through, and the
// derived views consumed by presentation.
//
// The reducer is a total, pure function. It never fails: unknown
// actions and references to missing ids leave the state unchanged.
// Wall-clock time and id generation are injected through the Reducer
// struct so that action sequences replay deterministically in tests.
package plan

import "time"

// Priority is the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Status represents the state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusSkipped    Status = "skipped"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusSkipped}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends a task's lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// TaskType distinguishes non-negotiable tasks from reschedulable ones.
type TaskType string

const (
	// TypeHard marks a task that must be done and cannot be skipped
	// without explicit action.
	TypeHard TaskType = "hard"

	// TypeSoft marks a flexible, reschedulable task.
	TypeSoft TaskType = "soft"
)

// IsValid returns true if the task type is a known valid value.
func (t TaskType) IsValid() bool {
	return t == TypeHard || t == TypeSoft
}

// Location is the planning bucket a task occupies.
type Location string

const (
	// LocationInbox holds captured but uncommitted tasks.
	LocationInbox Location = "inbox"

	// LocationScheduled holds tasks committed to a date.
	LocationScheduled Location = "scheduled"

	// LocationSomeday holds tasks deferred indefinitely.
	LocationSomeday Location = "someday"
)

// ValidLocations returns all valid location values.
func ValidLocations() []Location {
	return []Location{LocationInbox, LocationScheduled, LocationSomeday}
}

// IsValid returns true if the location is a known valid value.
func (l Location) IsValid() bool {
	for _, valid := range ValidLocations() {
		if l == valid {
			return true
		}
	}
	return false
}

// Recurrence describes how a task repeats.
type Recurrence string

const (
	RecurrenceNone   Recurrence = "none"
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
	RecurrenceCustom Recurrence = "custom"
)

// Frequency describes how often a habit is expected.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekends Frequency = "weekends"
	FrequencyCustom   Frequency = "custom"
)

// IsValid returns true if the frequency is a known valid value.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekdays, FrequencyWeekends, FrequencyCustom:
		return true
	default:
		return false
	}
}

// DefaultMaxFreezes is the streak-freeze allowance granted to new habits.
const DefaultMaxFreezes = 3

// Task is a unit of work.
type Task struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Priority          Priority   `json:"priority"`
	Status            Status     `json:"status"`
	Type              TaskType   `json:"taskType"`
	Location          Location   `json:"location"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	EstimatedDuration int        `json:"estimatedDuration"`
	Category          string     `json:"category"`
	Recurrence        Recurrence `json:"recurrence"`
	CustomRecurrence  []int      `json:"customRecurrence,omitempty"`

	// ConfirmedForToday is the daily planning ritual gate: only
	// confirmed tasks count toward the day's committed capacity.
	ConfirmedForToday bool `json:"confirmedForToday"`

	// RescheduleCount increments on every reschedule and never
	// decrements.
	RescheduleCount int `json:"rescheduleCount"`

	// OriginalDueDate records the due date before the first
	// reschedule. CarriedOverFrom is the ISO day most recently
	// vacated by a reschedule.
	OriginalDueDate *time.Time `json:"originalDueDate,omitempty"`
	CarriedOverFrom string     `json:"carriedOverFrom,omitempty"`

	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TodoItem is one checkable entry in a todo list.
type TodoItem struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TodoList is a named, colored, ordered collection of checkable items.
// Items keep insertion order. Archived lists are retained and excluded
// from active views, never deleted.
type TodoList struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color,omitempty"`
	Items     []TodoItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	Archived  bool       `json:"archived"`
}

// Habit is a recurring commitment tracked by date-stamped completion.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   Frequency `json:"frequency"`
	CustomDays  []int     `json:"customDays,omitempty"`
	Goal        int       `json:"goal"`
	StartDate   time.Time `json:"startDate"`
	Color       string    `json:"color,omitempty"`

	// CompletedDates is append-only; a date appears in at most one
	// of CompletedDates and MissedDates.
	CompletedDates []string `json:"completedDates"`
	MissedDates    []string `json:"missedDates"`

	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`

	// StreakFreezes is a consumable allowance in [0, MaxFreezes]
	// that lets a streak survive a missed day.
	StreakFreezes int `json:"streakFreezes"`
	MaxFreezes    int `json:"maxFreezes"`

	CreatedAt time.Time `json:"createdAt"`
}

// CompletedOn reports whether the habit was completed on the given ISO
// day. Callers use this to gate CompleteHabit dispatches: the reducer
// itself appends without checking.
func (h Habit) CompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// Category is a named color tag referenced by Task.Category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TimeBlock is a scheduled span of the day, optionally bound to a task.
// Times are HH:mm strings.
type TimeBlock struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId,omitempty"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Title     string `json:"title,omitempty"`
	Color     string `json:"color,omitempty"`
}

// FixedCommitment is a recurring calendar block that reduces effective
// daily capacity. Days are weekdays 0-6, Sunday first.
type FixedCommitment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Days      []int  `json:"days"`
}

// WorkingHours bounds the plannable day. Times are HH:mm strings.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// State is the canonical in-memory application state. The reducer owns
// it exclusively while the process is alive; the durable store owns the
// at-rest copy.
type State struct {
	Tasks            []Task            `json:"tasks"`
	TodoLists        []TodoList        `json:"todoLists"`
	Habits           []Habit           `json:"habits"`
	Categories       []Category        `json:"categories"`
	TimeBlocks       []TimeBlock       `json:"timeBlocks"`
	FixedCommitments []FixedCommitment `json:"fixedCommitments"`

	FocusMode     bool   `json:"focusMode"`
	CurrentTaskID string `json:"currentTaskId"`
	Theme         string `json:"theme"`

	DailyCapacityMinutes int          `json:"dailyCapacityMinutes"`
	TaskAgingDays        int          `json:"taskAgingDays"`
	WorkingHours         WorkingHours `json:"workingHours"`
}

// Default settings applied at first run.
const (
	DefaultTheme                = "dark"
	DefaultDailyCapacityMinutes = 480
	DefaultTaskAgingDays        = 3
)

// DefaultWorkingHours returns the working-hours window applied at
// first run.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Start: "09:00", End: "17:00"}
}

// DefaultCategories returns the five categories seeded at first run.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Work", Color: "hsl(186, 100%, 50%)"},
		{ID: "2", Name: "Personal", Color: "hsl(142, 70%, 45%)"},
		{ID: "3", Name: "Health", Color: "hsl(340, 75%, 55%)"},
		{ID: "4", Name: "Learning", Color: "hsl(280, 65%, 60%)"},
		{ID: "5", Name: "Finance", Color: "hsl(38, 92%, 55%)"},
	}
}

// NewState returns the initial state with seeded categories and default
// settings.
func NewState() State {
	return State{
		Tasks:                []Task{},
		TodoLists:            []TodoList{},
		Habits:               []Habit{},
		Categories:           DefaultCategories(),
		TimeBlocks:           []TimeBlock{},
		FixedCommitments:     []FixedCommitment{},
		Theme:                DefaultTheme,
		DailyCapacityMinutes: DefaultDailyCapacityMinutes,
		TaskAgingDays:        DefaultTaskAgingDays,
		WorkingHours:         DefaultWorkingHours(),
	}
}

// TaskByID returns the task with the given id, if present.
func (s State) TaskByID(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// HabitByID returns the habit with the given id, if present.
func (s State) HabitByID(id string) (Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// TodoListByID returns the todo list with the given id, if present.
func (s State) TodoListByID(id string) (TodoList, bool) {
	for _, l := range s.TodoLists {
		if l.ID == id {
			return l, true
		}
	}
	return TodoList{}, false
}
