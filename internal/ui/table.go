// Package ui renders terminal output: aligned tables and small
// formatting helpers shared by the dk commands.
package ui

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	internalstrings "github.com/daykeep/daykeep/internal/strings"
)

const (
	cellMaxWidth = 50
	cellEllipsis = "..."
)

// Table collects rows and renders them aligned under a header.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable returns a table with the given header row.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// String renders the table with two spaces between columns. Column
// widths ignore ANSI color codes so styled cells align.
func (t *Table) String() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = ansi.PrintableRuneWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := ansi.PrintableRuneWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			b.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			b.WriteString(strings.Repeat(" ", widths[i]-ansi.PrintableRuneWidth(cell)+2))
		}
		b.WriteByte('\n')
	}

	writeRow(t.headers)
	for _, row := range t.rows {
		writeRow(row)
	}
	return b.String()
}

// Cell flattens a value to a single line and truncates it to the
// standard column width, preserving ANSI sequences.
func Cell(value string) string {
	value = internalstrings.NormalizeWhitespace(value)
	if ansi.PrintableRuneWidth(value) <= cellMaxWidth {
		return value
	}
	return truncate.StringWithTail(value, cellMaxWidth, cellEllipsis)
}
