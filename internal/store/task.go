package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create validates and saves a new task, assigning its ID.
	// Returns ErrInvalidEntity wrapping the domain validation error if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task regardless of its owner.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByOwnerAndStatus returns the owner's tasks whose status is one of
	// statuses. An empty status set matches nothing. Order is unspecified.
	ListByOwnerAndStatus(
		ctx context.Context,
		owner uuid.UUID,
		statuses ...domain.TaskStatus,
	) ([]*domain.Task, error)

	// Update replaces every mutable field of the stored task with the values
	// in task. ID, owner and CreatedAt are not changed.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// CountByOwnerAndStatus counts the owner's tasks with the given status,
	// or all of the owner's tasks when status is nil.
	CountByOwnerAndStatus(ctx context.Context, owner uuid.UUID, status *domain.TaskStatus) (int, error)

	// RunInTx executes fn as one unit of work. The TaskStore passed to fn is
	// bound to that unit; the work is committed if fn returns nil and rolled
	// back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tasks TaskStore) error) error
}
