package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Harshpandey2165/taskmanager--v1/internal/markdown"
	"github.com/Harshpandey2165/taskmanager--v1/internal/ui"
	"github.com/Harshpandey2165/taskmanager--v1/task"
	"golang.org/x/term"
)

const detailTimeLayout = "2006-01-02 15:04:05"

func printTaskTable(a *app, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks found.")
		return
	}

	fmt.Fprint(a.out, formatTaskTable(tasks, a.styler, time.Now()))
}

func formatTaskTable(tasks []task.Task, styler ui.Styler, now time.Time) string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	prefixLengths := ui.UniqueIDPrefixLengths(ids)

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		state := "[ ]"
		if t.Completed {
			state = "[x]"
		}
		due := styler.Due(ui.FormatDueDate(t.DueDate, now), t.Completed)
		row := []string{
			styler.HighlightID(t.ID, prefixLengths[strings.ToLower(t.ID)]),
			state,
			styler.Priority(string(t.Priority)),
			due,
			ui.FormatTimeAgo(t.UpdatedAt, now),
			ui.TruncateTableCell(t.Title),
		}
		rows = append(rows, row)
	}

	return ui.FormatTable([]string{"ID", "DONE", "PRI", "DUE", "UPDATED", "TITLE"}, rows)
}

func printTaskDetail(a *app, t task.Task) {
	fmt.Fprintf(a.out, "ID:        %s\n", t.ID)
	fmt.Fprintf(a.out, "Title:     %s\n", t.Title)
	fmt.Fprintf(a.out, "Priority:  %s\n", t.Priority)

	due := "-"
	if t.DueDate != "" {
		due = fmt.Sprintf("%s (%s)", t.DueDate, ui.FormatDueDate(t.DueDate, time.Now()))
	}
	fmt.Fprintf(a.out, "Due:       %s\n", due)

	completed := "no"
	if t.Completed {
		completed = "yes"
	}
	fmt.Fprintf(a.out, "Completed: %s\n", completed)

	if !t.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Created:   %s\n", t.CreatedAt.Format(detailTimeLayout))
	}
	if !t.UpdatedAt.IsZero() {
		fmt.Fprintf(a.out, "Updated:   %s\n", t.UpdatedAt.Format(detailTimeLayout))
	}

	if rendered := markdown.Render(outputWidth(), t.Description); rendered != "" {
		fmt.Fprintf(a.out, "\n%s\n", rendered)
	}
}

func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 20 {
		return 80
	}
	return width
}
