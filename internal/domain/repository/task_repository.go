package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain/entity"
)

// ErrTaskNotFound is returned when a task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// TaskFilter narrows a task listing. A nil Completed means no filtering on
// the completion flag.
type TaskFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// List retrieves tasks matching the filter, ordered by ascending ID so
	// pagination stays stable for an unmodified dataset.
	List(ctx context.Context, filter TaskFilter) ([]*entity.Task, error)

	// Count returns the total number of tasks matching the filter, ignoring
	// Limit and Offset.
	Count(ctx context.Context, filter TaskFilter) (int64, error)

	// FindByID retrieves a single task by its identifier.
	FindByID(ctx context.Context, id uint) (*entity.Task, error)

	// Create persists a new task.
	Create(ctx context.Context, task *entity.Task) error

	// Update modifies an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes a task by its identifier.
	Delete(ctx context.Context, id uint) error
}
