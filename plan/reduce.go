package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/daykeep/daykeep/internal/dates"
)

// Reducer applies actions to state. Now and NewID are seams for
// deterministic replay in tests; the zero value uses the wall clock
// and random uuids.
type Reducer struct {
	Now   func() time.Time
	NewID func() string
}

func (r Reducer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r Reducer) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

// Apply returns the state that results from applying action. Unknown
// actions, nil actions, and references to missing ids return the input
// state unchanged; Apply never fails.
func (r Reducer) Apply(s State, action Action) State {
	switch a := action.(type) {
	case AddTask:
		return r.addTask(s, a)
	case UpdateTask:
		return r.updateTask(s, a)
	case DeleteTask:
		s.Tasks = filterTasks(s.Tasks, func(t Task) bool { return t.ID != a.ID })
		return s
	case CompleteTask:
		now := r.now()
		return mapTask(s, a.ID, func(t Task) Task {
			t.Status = StatusCompleted
			t.CompletedAt = &now
			t.UpdatedAt = now
			return t
		})
	case SkipTask:
		now := r.now()
		return mapTask(s, a.ID, func(t Task) Task {
			t.Status = StatusSkipped
			t.CompletedAt = nil
			t.UpdatedAt = now
			return t
		})
	case RescheduleTask:
		return r.rescheduleTask(s, a)
	case ReorderTasks:
		s.Tasks = append([]Task(nil), a.Tasks...)
		return s
	case AddHabit:
		return r.addHabit(s, a)
	case CompleteHabit:
		return mapHabit(s, a.ID, func(h Habit) Habit {
			h.CompletedDates = append(append([]string(nil), h.CompletedDates...), a.Date)
			h.CurrentStreak++
			if h.CurrentStreak > h.LongestStreak {
				h.LongestStreak = h.CurrentStreak
			}
			return h
		})
	case DeleteHabit:
		habits := make([]Habit, 0, len(s.Habits))
		for _, h := range s.Habits {
			if h.ID != a.ID {
				habits = append(habits, h)
			}
		}
		s.Habits = habits
		return s
	case UseStreakFreeze:
		return mapHabit(s, a.ID, func(h Habit) Habit {
			if h.StreakFreezes > 0 {
				h.StreakFreezes--
			}
			return h
		})
	case AddTodoList:
		list := TodoList{
			ID:        r.newID(),
			Name:      a.Name,
			Color:     a.Color,
			Items:     []TodoItem{},
			CreatedAt: r.now(),
		}
		s.TodoLists = append(append([]TodoList(nil), s.TodoLists...), list)
		return s
	case AddTodoItem:
		item := TodoItem{ID: r.newID(), Text: a.Text, CreatedAt: r.now()}
		return mapTodoList(s, a.ListID, func(l TodoList) TodoList {
			l.Items = append(append([]TodoItem(nil), l.Items...), item)
			return l
		})
	case ToggleTodoItem:
		now := r.now()
		return mapTodoList(s, a.ListID, func(l TodoList) TodoList {
			items := make([]TodoItem, len(l.Items))
			copy(items, l.Items)
			for i := range items {
				if items[i].ID != a.ItemID {
					continue
				}
				items[i].Completed = !items[i].Completed
				if items[i].Completed {
					items[i].CompletedAt = &now
				} else {
					items[i].CompletedAt = nil
				}
			}
			l.Items = items
			return l
		})
	case DeleteTodoItem:
		return mapTodoList(s, a.ListID, func(l TodoList) TodoList {
			items := make([]TodoItem, 0, len(l.Items))
			for _, item := range l.Items {
				if item.ID != a.ItemID {
					items = append(items, item)
				}
			}
			l.Items = items
			return l
		})
	case ArchiveTodoList:
		return mapTodoList(s, a.ID, func(l TodoList) TodoList {
			l.Archived = true
			return l
		})
	case AddTimeBlock:
		block := TimeBlock{
			ID:        r.newID(),
			TaskID:    a.TaskID,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Title:     a.Title,
			Color:     a.Color,
		}
		s.TimeBlocks = append(append([]TimeBlock(nil), s.TimeBlocks...), block)
		return s
	case UpdateTimeBlock:
		blocks := append([]TimeBlock(nil), s.TimeBlocks...)
		for i := range blocks {
			if blocks[i].ID != a.ID {
				continue
			}
			applyTimeBlockUpdates(&blocks[i], a.Updates)
		}
		s.TimeBlocks = blocks
		return s
	case DeleteTimeBlock:
		blocks := make([]TimeBlock, 0, len(s.TimeBlocks))
		for _, b := range s.TimeBlocks {
			if b.ID != a.ID {
				blocks = append(blocks, b)
			}
		}
		s.TimeBlocks = blocks
		return s
	case AddFixedCommitment:
		commitment := FixedCommitment{
			ID:        r.newID(),
			Name:      a.Name,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Days:      append([]int(nil), a.Days...),
		}
		s.FixedCommitments = append(append([]FixedCommitment(nil), s.FixedCommitments...), commitment)
		return s
	case UpdateFixedCommitment:
		commitments := append([]FixedCommitment(nil), s.FixedCommitments...)
		for i := range commitments {
			if commitments[i].ID != a.ID {
				continue
			}
			applyFixedCommitmentUpdates(&commitments[i], a.Updates)
		}
		s.FixedCommitments = commitments
		return s
	case DeleteFixedCommitment:
		commitments := make([]FixedCommitment, 0, len(s.FixedCommitments))
		for _, c := range s.FixedCommitments {
			if c.ID != a.ID {
				commitments = append(commitments, c)
			}
		}
		s.FixedCommitments = commitments
		return s
	case SetTheme:
		s.Theme = a.Theme
		return s
	case SetFocusMode:
		s.FocusMode = a.Enabled
		return s
	case SetCurrentTask:
		s.CurrentTaskID = a.ID
		return s
	case SetCapacitySettings:
		if a.DailyCapacityMinutes != nil {
			s.DailyCapacityMinutes = *a.DailyCapacityMinutes
		}
		if a.TaskAgingDays != nil {
			s.TaskAgingDays = *a.TaskAgingDays
		}
		if a.WorkingHours != nil {
			s.WorkingHours = *a.WorkingHours
		}
		return s
	case ImportData:
		s.Tasks = append(append([]Task(nil), s.Tasks...), a.Tasks...)
		s.TodoLists = append(append([]TodoList(nil), s.TodoLists...), a.TodoLists...)
		s.Habits = append(append([]Habit(nil), s.Habits...), a.Habits...)
		if a.Categories != nil {
			s.Categories = append([]Category(nil), a.Categories...)
		}
		return s
	case LoadState:
		return a.State
	default:
		return s
	}
}

func (r Reducer) addTask(s State, a AddTask) State {
	now := r.now()
	task := Task{
		ID:                r.newID(),
		Title:             a.Title,
		Description:       a.Description,
		Priority:          a.Priority,
		Status:            a.Status,
		Type:              a.Type,
		Location:          a.Location,
		DueDate:           a.DueDate,
		EstimatedDuration: a.EstimatedDuration,
		Category:          a.Category,
		Recurrence:        a.Recurrence,
		CustomRecurrence:  append([]int(nil), a.CustomRecurrence...),
		ConfirmedForToday: a.ConfirmedForToday,
		Order:             len(s.Tasks),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if task.Status == "" {
		task.Status = StatusPending
	}
	if task.Type == "" {
		task.Type = TypeSoft
	}
	if task.Location == "" {
		task.Location = LocationInbox
	}
	if task.Recurrence == "" {
		task.Recurrence = RecurrenceNone
	}
	if task.EstimatedDuration < 0 {
		task.EstimatedDuration = 0
	}
	// A task created already completed still gets its stamp, keeping
	// completed <=> stamped true after every dispatch.
	if task.Status == StatusCompleted {
		task.CompletedAt = &now
	}
	s.Tasks = append(append([]Task(nil), s.Tasks...), task)
	return s
}

func (r Reducer) updateTask(s State, a UpdateTask) State {
	now := r.now()
	return mapTask(s, a.ID, func(t Task) Task {
		u := a.Updates
		if u.Title != nil {
			t.Title = *u.Title
		}
		if u.Description != nil {
			t.Description = *u.Description
		}
		if u.Priority != nil {
			t.Priority = *u.Priority
		}
		if u.Type != nil {
			t.Type = *u.Type
		}
		if u.Location != nil {
			t.Location = *u.Location
		}
		if u.DueDate != nil {
			due := *u.DueDate
			t.DueDate = &due
		}
		if u.EstimatedDuration != nil && *u.EstimatedDuration >= 0 {
			t.EstimatedDuration = *u.EstimatedDuration
		}
		if u.Category != nil {
			t.Category = *u.Category
		}
		if u.ConfirmedForToday != nil {
			t.ConfirmedForToday = *u.ConfirmedForToday
		}
		if u.Order != nil {
			t.Order = *u.Order
		}
		if u.Status != nil {
			t.Status = *u.Status
			// Keep completedAt in lockstep with status so the
			// completed <=> stamped invariant holds after every
			// dispatch.
			if t.Status == StatusCompleted {
				if t.CompletedAt == nil {
					t.CompletedAt = &now
				}
			} else {
				t.CompletedAt = nil
			}
		}
		t.UpdatedAt = now
		return t
	})
}

func (r Reducer) rescheduleTask(s State, a RescheduleTask) State {
	now := r.now()
	return mapTask(s, a.ID, func(t Task) Task {
		if t.OriginalDueDate == nil {
			t.OriginalDueDate = t.DueDate
		}
		if t.DueDate != nil {
			t.CarriedOverFrom = dates.ISO(*t.DueDate)
		}
		t.RescheduleCount++
		newDate := a.NewDate
		t.DueDate = &newDate
		t.ConfirmedForToday = dates.IsToday(newDate, now)
		t.UpdatedAt = now
		return t
	})
}

func (r Reducer) addHabit(s State, a AddHabit) State {
	now := r.now()
	habit := Habit{
		ID:             r.newID(),
		Name:           a.Name,
		Description:    a.Description,
		Frequency:      a.Frequency,
		CustomDays:     append([]int(nil), a.CustomDays...),
		Goal:           a.Goal,
		StartDate:      a.StartDate,
		Color:          a.Color,
		CompletedDates: []string{},
		MissedDates:    []string{},
		MaxFreezes:     a.MaxFreezes,
		CreatedAt:      now,
	}
	if habit.Frequency == "" {
		habit.Frequency = FrequencyDaily
	}
	if habit.StartDate.IsZero() {
		habit.StartDate = now
	}
	if habit.MaxFreezes <= 0 {
		habit.MaxFreezes = DefaultMaxFreezes
	}
	habit.StreakFreezes = habit.MaxFreezes
	s.Habits = append(append([]Habit(nil), s.Habits...), habit)
	return s
}

func mapTask(s State, id string, fn func(Task) Task) State {
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i] = fn(tasks[i])
		}
	}
	s.Tasks = tasks
	return s
}

func mapHabit(s State, id string, fn func(Habit) Habit) State {
	habits := make([]Habit, len(s.Habits))
	copy(habits, s.Habits)
	for i := range habits {
		if habits[i].ID == id {
			habits[i] = fn(habits[i])
		}
	}
	s.Habits = habits
	return s
}

func mapTodoList(s State, id string, fn func(TodoList) TodoList) State {
	lists := make([]TodoList, len(s.TodoLists))
	copy(lists, s.TodoLists)
	for i := range lists {
		if lists[i].ID == id {
			lists[i] = fn(lists[i])
		}
	}
	s.TodoLists = lists
	return s
}

func filterTasks(tasks []Task, keep func(Task) bool) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

func applyTimeBlockUpdates(block *TimeBlock, u TimeBlockUpdates) {
	if u.TaskID != nil {
		block.TaskID = *u.TaskID
	}
	if u.StartTime != nil {
		block.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		block.EndTime = *u.EndTime
	}
	if u.Title != nil {
		block.Title = *u.Title
	}
	if u.Color != nil {
		block.Color = *u.Color
	}
}

func applyFixedCommitmentUpdates(c *FixedCommitment, u FixedCommitmentUpdates) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.StartTime != nil {
		c.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		c.EndTime = *u.EndTime
	}
	if u.Days != nil {
		c.Days = append([]int(nil), *u.Days...)
	}
}
