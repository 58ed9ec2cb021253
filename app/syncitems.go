package app

import (
	"github.com/daykeep/daykeep/plan"
	"github.com/daykeep/daykeep/store"
)

// deleteRef is the payload queued for delete operations: the backend
// only needs the id.
type deleteRef struct {
	ID string `json:"id"`
}

// enqueueSyncItems records the sync operations implied by an action.
// Creates and updates carry the entity as it stands in the new state;
// deletes carry just the id. Bulk and local-only actions (reorder,
// settings, import, state hydration) are not queued.
func (a *App) enqueueSyncItems(prev, next plan.State, action plan.Action) {
	switch act := action.(type) {
	case plan.AddTask:
		if len(next.Tasks) > len(prev.Tasks) {
			a.enqueue(store.ItemTask, store.ActionCreate, next.Tasks[len(next.Tasks)-1])
		}
	case plan.UpdateTask:
		a.enqueueTaskUpdate(next, act.ID)
	case plan.CompleteTask:
		a.enqueueTaskUpdate(next, act.ID)
	case plan.SkipTask:
		a.enqueueTaskUpdate(next, act.ID)
	case plan.RescheduleTask:
		a.enqueueTaskUpdate(next, act.ID)
	case plan.DeleteTask:
		a.enqueue(store.ItemTask, store.ActionDelete, deleteRef{ID: act.ID})

	case plan.AddHabit:
		if len(next.Habits) > len(prev.Habits) {
			a.enqueue(store.ItemHabit, store.ActionCreate, next.Habits[len(next.Habits)-1])
		}
	case plan.CompleteHabit:
		a.enqueueHabitUpdate(next, act.ID)
	case plan.UseStreakFreeze:
		a.enqueueHabitUpdate(next, act.ID)
	case plan.DeleteHabit:
		a.enqueue(store.ItemHabit, store.ActionDelete, deleteRef{ID: act.ID})

	case plan.AddTodoList:
		if len(next.TodoLists) > len(prev.TodoLists) {
			a.enqueue(store.ItemTodoList, store.ActionCreate, next.TodoLists[len(next.TodoLists)-1])
		}
	case plan.AddTodoItem:
		a.enqueueListUpdate(next, act.ListID)
	case plan.ToggleTodoItem:
		a.enqueueListUpdate(next, act.ListID)
	case plan.DeleteTodoItem:
		a.enqueueListUpdate(next, act.ListID)
	case plan.ArchiveTodoList:
		a.enqueueListUpdate(next, act.ID)

	case plan.AddTimeBlock:
		if len(next.TimeBlocks) > len(prev.TimeBlocks) {
			a.enqueue(store.ItemTimeBlock, store.ActionCreate, next.TimeBlocks[len(next.TimeBlocks)-1])
		}
	case plan.UpdateTimeBlock:
		for _, b := range next.TimeBlocks {
			if b.ID == act.ID {
				a.enqueue(store.ItemTimeBlock, store.ActionUpdate, b)
			}
		}
	case plan.DeleteTimeBlock:
		a.enqueue(store.ItemTimeBlock, store.ActionDelete, deleteRef{ID: act.ID})

	case plan.AddFixedCommitment:
		if len(next.FixedCommitments) > len(prev.FixedCommitments) {
			a.enqueue(store.ItemFixedCommitment, store.ActionCreate, next.FixedCommitments[len(next.FixedCommitments)-1])
		}
	case plan.UpdateFixedCommitment:
		for _, c := range next.FixedCommitments {
			if c.ID == act.ID {
				a.enqueue(store.ItemFixedCommitment, store.ActionUpdate, c)
			}
		}
	case plan.DeleteFixedCommitment:
		a.enqueue(store.ItemFixedCommitment, store.ActionDelete, deleteRef{ID: act.ID})
	}
}

func (a *App) enqueueTaskUpdate(next plan.State, id string) {
	if t, ok := next.TaskByID(id); ok {
		a.enqueue(store.ItemTask, store.ActionUpdate, t)
	}
}

func (a *App) enqueueHabitUpdate(next plan.State, id string) {
	if h, ok := next.HabitByID(id); ok {
		a.enqueue(store.ItemHabit, store.ActionUpdate, h)
	}
}

func (a *App) enqueueListUpdate(next plan.State, id string) {
	if l, ok := next.TodoListByID(id); ok {
		a.enqueue(store.ItemTodoList, store.ActionUpdate, l)
	}
}

func (a *App) enqueue(itemType store.ItemType, action store.ItemAction, payload any) {
	if _, err := a.store.EnqueueSync(itemType, action, payload); err != nil {
		a.logger.Printf("enqueue sync: %v", err)
	}
}
