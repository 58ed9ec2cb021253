package ui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatMinutes(t *testing.T) {
	for _, tc := range []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{480, "8h"},
		{-10, "0m"},
	} {
		if got := FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestFormatDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	for _, tc := range []struct {
		at   time.Time
		want string
	}{
		{now, "today"},
		{now.AddDate(0, 0, 1), "tomorrow"},
		{now.AddDate(0, 0, -1), "yesterday"},
		{now.AddDate(0, 0, 7), "2026-03-09"},
	} {
		if got := FormatDay(tc.at, now); got != tc.want {
			t.Errorf("FormatDay(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestTable(t *testing.T) {
	table := NewTable("ID", "TITLE")
	table.AddRow("a1", "first")
	table.AddRow("b22", "second")

	out := table.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "TITLE") {
		t.Errorf("header = %q", lines[0])
	}
	// Columns align: TITLE starts at the same offset everywhere.
	offset := strings.Index(lines[0], "TITLE")
	if strings.Index(lines[1], "first") != offset {
		t.Errorf("row 1 misaligned: %q", lines[1])
	}
	if strings.Index(lines[2], "second") != offset {
		t.Errorf("row 2 misaligned: %q", lines[2])
	}
}

func TestTable_IgnoresANSIWidth(t *testing.T) {
	styled := "\x1b[31mred\x1b[0m"
	table := NewTable("A", "B")
	table.AddRow(styled, "x")
	table.AddRow("rrr", "y")

	lines := strings.Split(strings.TrimRight(table.String(), "\n"), "\n")
	if strings.Index(lines[1], "x") != strings.Index(lines[2], "y") {
		t.Error("ANSI codes skewed column alignment")
	}
}

func TestCell(t *testing.T) {
	if got := Cell("multi\nline\ttext"); got != "multi line text" {
		t.Errorf("Cell = %q", got)
	}

	long := strings.Repeat("x", 80)
	got := Cell(long)
	if len(got) > 50 {
		t.Errorf("Cell did not truncate: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Cell missing ellipsis: %q", got)
	}
}
