package main

import (
	"strings"
	"testing"
	"time"

	"github.com/Harshpandey2165/taskmanager--v1/internal/ui"
	"github.com/Harshpandey2165/taskmanager--v1/task"
)

func plainStyler() ui.Styler {
	disabled := false
	return ui.NewStyler(&disabled)
}

func TestFormatTaskTable(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		{
			ID:        "aaa111",
			Title:     "Pay rent",
			Priority:  task.PriorityHigh,
			DueDate:   "2024-03-10",
			UpdatedAt: now.Add(-time.Hour),
		},
		{
			ID:        "bbb222",
			Title:     "Water plants",
			Priority:  task.PriorityLow,
			Completed: true,
			UpdatedAt: now.Add(-48 * time.Hour),
		},
	}

	output := formatTaskTable(tasks, plainStyler(), now)
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), output)
	}

	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "TITLE") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "[ ]") || !strings.Contains(lines[1], "today") || !strings.Contains(lines[1], "1h ago") {
		t.Errorf("pending row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "[x]") || !strings.Contains(lines[2], "2d ago") {
		t.Errorf("completed row = %q", lines[2])
	}
}

func TestFormatTaskTableTruncatesLongTitles(t *testing.T) {
	tasks := []task.Task{{
		ID:       "aaa111",
		Title:    strings.Repeat("long ", 30),
		Priority: task.PriorityLow,
	}}

	output := formatTaskTable(tasks, plainStyler(), time.Now())
	if !strings.Contains(output, "...") {
		t.Errorf("expected truncated title: %q", output)
	}
}

func TestMatchTaskID(t *testing.T) {
	tasks := []task.Task{
		{ID: "abc123"},
		{ID: "abd456"},
		{ID: "ABC999"},
	}

	if _, err := matchTaskID(tasks, "ab"); err == nil {
		t.Error("expected ambiguity error for shared prefix")
	}

	id, err := matchTaskID(tasks, "abd")
	if err != nil {
		t.Fatalf("matchTaskID: %v", err)
	}
	if id != "abd456" {
		t.Errorf("id = %q, want abd456", id)
	}

	// Exact matches win even when they prefix another ID.
	id, err = matchTaskID(tasks, "abc123")
	if err != nil {
		t.Fatalf("matchTaskID: %v", err)
	}
	if id != "abc123" {
		t.Errorf("id = %q, want abc123", id)
	}

	if _, err := matchTaskID(tasks, "zzz"); err == nil {
		t.Error("expected no-match error")
	}
}
