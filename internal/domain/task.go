package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the two-state lifecycle of a task.
type TaskStatus string

const (
	StatusPending TaskStatus = "PENDING"
	StatusDone    TaskStatus = "DONE"
)

// ParseTaskStatus validates a wire-level status string.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch TaskStatus(raw) {
	case StatusPending, StatusDone:
		return TaskStatus(raw), nil
	default:
		return "", fmt.Errorf("%w: status must be PENDING or DONE", ErrInvalidInput)
	}
}

// Task is a unit of work owned by exactly one user. A task with a
// non-nil ParentID is a subtask and is excluded from top-level
// listings. UserID and ParentID are immutable after creation.
type Task struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Status    TaskStatus
	UserID    uuid.UUID
	ParentID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSubtask reports whether the task hangs under a parent.
func (t Task) IsSubtask() bool {
	return t.ParentID != nil
}
