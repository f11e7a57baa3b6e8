package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasknest/taskd/internal/domain"
)

// UserRepository is the durable store for user records, keyed by id
// and by unique email.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// TaskUpdateParams carries the mutable fields of a task. UserID and
// ParentID are deliberately absent: ownership and parent linkage are
// fixed at creation.
type TaskUpdateParams struct {
	Title   string
	Content string
	Status  domain.TaskStatus
}

// TaskRepository is the durable store for tasks and their one-level
// subtask linkage. Every read or write is scoped by the owning user id.
type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	// ListTopLevel returns the owner's tasks with no parent, in
	// store-natural order.
	ListTopLevel(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	ListByParent(ctx context.Context, parentID, userID uuid.UUID) ([]domain.Task, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (domain.Task, error)
	// Update overwrites the mutable fields of the task matching id and
	// owner, returning domain.ErrTaskNotFound when nothing matches.
	Update(ctx context.Context, id, userID uuid.UUID, params TaskUpdateParams) (domain.Task, error)
	// Delete removes the task matching id and owner. Deleting a task
	// that does not exist is not an error.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
