package store

import (
	"database/sql"
	"fmt"

	"github.com/daykeep/daykeep/plan"
)

// PutTask inserts or replaces a task. The location and status columns
// are extracted for indexed lookup; the record itself is authoritative.
func (s *Store) PutTask(t plan.Task) error {
	if t.ID == "" {
		return fmt.Errorf("put task: missing id")
	}
	data, err := encodeRecord(t)
	if err != nil {
		return fmt.Errorf("put task %s: %w", t.ID, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO tasks (id, location, status, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET location = excluded.location, status = excluded.status, data = excluded.data`,
		t.ID, string(t.Location), string(t.Status), data,
	)
	if err != nil {
		return fmt.Errorf("put task %s: %w", t.ID, err)
	}
	return nil
}

// Task returns the task with the given id.
func (s *Store) Task(id string) (plan.Task, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM tasks WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return plan.Task{}, ErrNotFound
	}
	if err != nil {
		return plan.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	var t plan.Task
	if err := decodeRecord(data, &t); err != nil {
		return plan.Task{}, fmt.Errorf("task %s: %w", id, err)
	}
	return t, nil
}

// Tasks returns all tasks.
func (s *Store) Tasks() ([]plan.Task, error) {
	return s.queryTasks("SELECT data FROM tasks")
}

// TasksByLocation returns tasks in the given planning bucket, served
// from the location index.
func (s *Store) TasksByLocation(location plan.Location) ([]plan.Task, error) {
	return s.queryTasks("SELECT data FROM tasks WHERE location = ?", string(location))
}

// TasksByStatus returns tasks with the given status, served from the
// status index.
func (s *Store) TasksByStatus(status plan.Status) ([]plan.Task, error) {
	return s.queryTasks("SELECT data FROM tasks WHERE status = ?", string(status))
}

func (s *Store) queryTasks(query string, args ...any) ([]plan.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []plan.Task
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		var t plan.Task
		if err := decodeRecord(data, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes a task. Deleting a missing id is not an error.
func (s *Store) DeleteTask(id string) error {
	return s.deleteRecord("tasks", id)
}

// PutTodoList inserts or replaces a todo list.
func (s *Store) PutTodoList(l plan.TodoList) error {
	return putRecord(s, "todo_lists", l.ID, l)
}

// TodoLists returns all todo lists.
func (s *Store) TodoLists() ([]plan.TodoList, error) {
	return allRecords[plan.TodoList](s, "todo_lists")
}

// DeleteTodoList removes a todo list.
func (s *Store) DeleteTodoList(id string) error {
	return s.deleteRecord("todo_lists", id)
}

// PutHabit inserts or replaces a habit.
func (s *Store) PutHabit(h plan.Habit) error {
	return putRecord(s, "habits", h.ID, h)
}

// Habits returns all habits.
func (s *Store) Habits() ([]plan.Habit, error) {
	return allRecords[plan.Habit](s, "habits")
}

// DeleteHabit removes a habit.
func (s *Store) DeleteHabit(id string) error {
	return s.deleteRecord("habits", id)
}

// PutCategory inserts or replaces a category.
func (s *Store) PutCategory(c plan.Category) error {
	return putRecord(s, "categories", c.ID, c)
}

// Categories returns all categories.
func (s *Store) Categories() ([]plan.Category, error) {
	return allRecords[plan.Category](s, "categories")
}

// DeleteCategory removes a category.
func (s *Store) DeleteCategory(id string) error {
	return s.deleteRecord("categories", id)
}

// PutTimeBlock inserts or replaces a time block.
func (s *Store) PutTimeBlock(b plan.TimeBlock) error {
	return putRecord(s, "time_blocks", b.ID, b)
}

// TimeBlocks returns all time blocks.
func (s *Store) TimeBlocks() ([]plan.TimeBlock, error) {
	return allRecords[plan.TimeBlock](s, "time_blocks")
}

// DeleteTimeBlock removes a time block.
func (s *Store) DeleteTimeBlock(id string) error {
	return s.deleteRecord("time_blocks", id)
}

// PutFixedCommitment inserts or replaces a fixed commitment.
func (s *Store) PutFixedCommitment(c plan.FixedCommitment) error {
	return putRecord(s, "fixed_commitments", c.ID, c)
}

// FixedCommitments returns all fixed commitments.
func (s *Store) FixedCommitments() ([]plan.FixedCommitment, error) {
	return allRecords[plan.FixedCommitment](s, "fixed_commitments")
}

// DeleteFixedCommitment removes a fixed commitment.
func (s *Store) DeleteFixedCommitment(id string) error {
	return s.deleteRecord("fixed_commitments", id)
}

func putRecord[T any](s *Store, table, id string, record T) error {
	if id == "" {
		return fmt.Errorf("put %s: missing id", table)
	}
	data, err := encodeRecord(record)
	if err != nil {
		return fmt.Errorf("put %s %s: %w", table, id, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO "+table+" (id, data) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data",
		id, data,
	)
	if err != nil {
		return fmt.Errorf("put %s %s: %w", table, id, err)
	}
	return nil
}

func allRecords[T any](s *Store, table string) ([]T, error) {
	rows, err := s.db.Query("SELECT data FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		var record T
		if err := decodeRecord(data, &record); err != nil {
			return nil, fmt.Errorf("%s: %w", table, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return records, nil
}

func (s *Store) deleteRecord(table, id string) error {
	if _, err := s.db.Exec("DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	return nil
}
