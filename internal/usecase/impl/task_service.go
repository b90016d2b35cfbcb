package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger
}

// TaskServiceParams holds dependencies for taskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	Logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		logger:   params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns one page of tasks. Pages past the end of the result set are an
// error rather than an empty page, except for page 1 of an empty set.
func (srv *taskService) List(ctx context.Context, input usecase.ListTasksInput) (*usecase.TaskListOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}

	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = usecase.DefaultPageSize
	}
	if pageSize > usecase.MaxPageSize {
		pageSize = usecase.MaxPageSize
	}

	filter := repository.TaskFilter{Completed: input.Completed}

	count, err := srv.taskRepo.Count(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count tasks")
	}

	offset := (page - 1) * pageSize
	if int64(offset) >= count && page > 1 {
		return nil, domainerrors.ErrInvalidPage
	}

	filter.Limit = pageSize
	filter.Offset = offset

	tasks, err := srv.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return &usecase.TaskListOutput{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		Tasks:    tasks,
	}, nil
}

// Create persists a new task.
func (srv *taskService) Create(ctx context.Context, input usecase.CreateTaskInput) (*entity.Task, error) {
	task := &entity.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	}

	if err := srv.taskRepo.Create(ctx, task); err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Info("Task created", slog.Any("taskID", task.ID))

	return task, nil
}

// Get retrieves a single task.
func (srv *taskService) Get(ctx context.Context, id uint) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to load task")
	}

	return task, nil
}

// Update applies a partial update: only the fields present in the input
// change, everything else keeps its stored value.
func (srv *taskService) Update(ctx context.Context, id uint, input usecase.UpdateTaskInput) (*entity.Task, error) {
	task, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := srv.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	return srv.Get(ctx, id)
}

// Delete removes a task.
func (srv *taskService) Delete(ctx context.Context, id uint) error {
	if err := srv.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound
		}

		return errors.Wrap(err, "failed to delete task")
	}

	srv.log(ctx).Info("Task deleted", slog.Any("taskID", id))

	return nil
}
