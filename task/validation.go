package task

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyTitle is returned when a draft title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyDescription is returned when a draft description is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrMissingID is returned when an update draft has no server-assigned ID.
	ErrMissingID = errors.New("task has no id")

	// ErrInvalidPriority is returned when an invalid priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidDueDate is returned when a due date is not a calendar date.
	ErrInvalidDueDate = errors.New("due date must be a date like 2006-01-02")

	// ErrTaskNotFound is returned when a task doesn't exist server-side.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidateDueDate checks a due date string. Empty is allowed.
func ValidateDueDate(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(DueDateLayout, value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDueDate, value)
	}
	return nil
}

// ValidateDraft checks a draft before a create request. The checks run
// locally; a failing draft never reaches the network.
func ValidateDraft(draft Task) error {
	if draft.Title == "" {
		return ErrEmptyTitle
	}
	if draft.Description == "" {
		return ErrEmptyDescription
	}
	if draft.Priority != "" && !draft.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, draft.Priority)
	}
	return ValidateDueDate(draft.DueDate)
}

// ValidateUpdate checks a draft before an update request.
func ValidateUpdate(draft Task) error {
	if draft.ID == "" {
		return ErrMissingID
	}
	return ValidateDraft(draft)
}
