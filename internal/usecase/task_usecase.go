package usecase

import (
	"context"

	"taskboard/internal/domain/entity"
)

// DefaultPageSize is the number of tasks returned per page when the client
// does not override it.
const DefaultPageSize = 10

// MaxPageSize caps the client-supplied page size.
const MaxPageSize = 100

// --- Input DTOs ---

// ListTasksInput narrows and pages a task listing. Page is 1-based; zero
// values fall back to the first page and the default size.
type ListTasksInput struct {
	Completed *bool
	Page      int
	PageSize  int
}

// CreateTaskInput defines the data required to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Completed   bool
}

// UpdateTaskInput carries a partial update. Nil fields keep their stored
// value.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// --- Output DTOs ---

// TaskListOutput is one page of tasks plus the unpaged total, which the
// delivery layer needs to build pagination links.
type TaskListOutput struct {
	Count    int64
	Page     int
	PageSize int
	Tasks    []*entity.Task
}

// HasNext reports whether a later page exists.
func (o *TaskListOutput) HasNext() bool {
	return int64(o.Page*o.PageSize) < o.Count
}

// HasPrevious reports whether an earlier page exists.
func (o *TaskListOutput) HasPrevious() bool {
	return o.Page > 1
}

// TaskUsecase defines the interface for task-related business operations.
type TaskUsecase interface {
	// List returns one page of tasks matching the filter.
	List(ctx context.Context, input ListTasksInput) (*TaskListOutput, error)

	// Create persists a new task.
	Create(ctx context.Context, input CreateTaskInput) (*entity.Task, error)

	// Get retrieves a single task.
	Get(ctx context.Context, id uint) (*entity.Task, error)

	// Update applies a partial update to an existing task.
	Update(ctx context.Context, id uint, input UpdateTaskInput) (*entity.Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, id uint) error
}
