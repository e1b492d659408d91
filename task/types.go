// Package task implements the task-collection store.
//
// The remote API is the source of truth; the store is a read-through /
// write-through cache scoped to the authenticated session. It owns the
// in-memory collection, the derived active/completed views, and the
// modal editing state: an enumerated add/edit mode, an independent
// profile flag, and a single Task-shaped edit buffer.
package task

import "time"

// Priority is a task's importance level.
type Priority string

const (
	// PriorityLow is the default priority.
	PriorityLow Priority = "low"

	// PriorityMedium is an elevated priority.
	PriorityMedium Priority = "medium"

	// PriorityHigh is the most urgent priority.
	PriorityHigh Priority = "high"
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

// Rank returns the sort rank for a priority (high first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// DueDateLayout is the calendar-date format for task due dates.
const DueDateLayout = "2006-01-02"

// Task is a single task. A Task without a server-assigned ID exists
// only in the edit buffer; every task in the collection has one.
type Task struct {
	// ID is the server-assigned identifier. Empty in drafts.
	ID string `json:"_id,omitempty"`

	// Title is the short summary of the task.
	Title string `json:"title"`

	// Description provides additional context.
	Description string `json:"description"`

	// Priority is the importance level. Defaults to low.
	Priority Priority `json:"priority"`

	// DueDate is the calendar date the task is due (2006-01-02),
	// or empty when no date is set.
	DueDate string `json:"dueDate"`

	// Completed reports whether the task is finished.
	Completed bool `json:"completed"`

	// Owner is the ID of the user the task belongs to.
	Owner string `json:"userId,omitempty"`

	// CreatedAt is when the task was created, per the server.
	CreatedAt time.Time `json:"createdAt,omitzero"`

	// UpdatedAt is when the task was last modified, per the server.
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Mode selects which editing surface the modal shows.
type Mode string

const (
	// ModeNone means no add/edit modal is open.
	ModeNone Mode = ""

	// ModeAdd means the modal is composing a new task.
	ModeAdd Mode = "add"

	// ModeEdit means the modal is editing an existing task.
	ModeEdit Mode = "edit"
)

// emptyDraft returns the buffer default: empty fields, low priority,
// not completed.
func emptyDraft() Task {
	return Task{Priority: PriorityLow}
}
