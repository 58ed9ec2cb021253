// Package export serializes application data for backup and moves it
// back in. The JSON document is the full-fidelity format; CSV covers
// tasks only, for spreadsheets.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/daykeep/daykeep/internal/dates"
	"github.com/daykeep/daykeep/plan"
)

// Version identifies the export document format.
const Version = "1.0"

// ErrInvalidFormat is returned when an import document is missing the
// version marker or the tasks collection.
var ErrInvalidFormat = errors.New("not a recognized export document")

// Preferences carries the settings included in an export.
type Preferences struct {
	Theme                string                 `json:"theme"`
	DailyCapacityMinutes int                    `json:"dailyCapacityMinutes"`
	TaskAgingDays        int                    `json:"taskAgingDays"`
	FixedCommitments     []plan.FixedCommitment `json:"fixedCommitments"`
}

// Document is the JSON export format.
type Document struct {
	Version     string          `json:"version"`
	ExportedAt  time.Time       `json:"exportedAt"`
	Tasks       []plan.Task     `json:"tasks"`
	TodoLists   []plan.TodoList `json:"todoLists"`
	Habits      []plan.Habit    `json:"habits"`
	Categories  []plan.Category `json:"categories"`
	Preferences Preferences     `json:"preferences"`
}

// JSON renders the state as an indented export document.
func JSON(s plan.State, now time.Time) ([]byte, error) {
	doc := Document{
		Version:    Version,
		ExportedAt: now,
		Tasks:      s.Tasks,
		TodoLists:  s.TodoLists,
		Habits:     s.Habits,
		Categories: s.Categories,
		Preferences: Preferences{
			Theme:                s.Theme,
			DailyCapacityMinutes: s.DailyCapacityMinutes,
			TaskAgingDays:        s.TaskAgingDays,
			FixedCommitments:     s.FixedCommitments,
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// CSVHeader is the column order of the tasks CSV.
var CSVHeader = []string{"id", "title", "description", "priority", "status", "taskType", "dueDate", "estimatedDuration", "category"}

// CSV renders the tasks as CSV with CSVHeader columns. Due dates are
// ISO calendar days; tasks without one leave the column empty.
func CSV(s plan.State) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range s.Tasks {
		due := ""
		if t.DueDate != nil {
			due = dates.ISO(*t.DueDate)
		}
		row := []string{
			t.ID,
			t.Title,
			t.Description,
			string(t.Priority),
			string(t.Status),
			string(t.Type),
			due,
			strconv.Itoa(t.EstimatedDuration),
			t.Category,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseJSON validates and decodes an export document. A document
// without a version marker or a tasks collection is rejected with
// ErrInvalidFormat; anything the decoder cannot parse is a wrapped
// decode error.
func ParseJSON(data []byte) (Document, error) {
	var probe struct {
		Version *string          `json:"version"`
		Tasks   *json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Document{}, fmt.Errorf("decode export: %w", err)
	}
	if probe.Version == nil || probe.Tasks == nil {
		return Document{}, ErrInvalidFormat
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode export: %w", err)
	}
	return doc, nil
}
