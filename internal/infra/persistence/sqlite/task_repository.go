package sqlite

import (
	"context"

	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements the domain.TaskRepository interface using GORM.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// List retrieves tasks matching the filter, ordered by ascending ID.
func (repo *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]*entity.Task, error) {
	query := repo.applyFilter(repo.db.WithContext(ctx))

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var taskMs []*model.TaskModel
	if err := repo.applyCompleted(query, filter).Order("id ASC").Find(&taskMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	tasks := make([]*entity.Task, 0, len(taskMs))
	for _, taskM := range taskMs {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// Count returns the total number of tasks matching the filter, ignoring
// Limit and Offset.
func (repo *taskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	var count int64

	query := repo.applyCompleted(repo.applyFilter(repo.db.WithContext(ctx)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count tasks")
	}

	return count, nil
}

// FindByID retrieves a single task by its identifier.
func (repo *taskRepository) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var taskM model.TaskModel
	if err := repo.db.WithContext(ctx).First(&taskM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by id")
	}

	return toTaskDomain(&taskM), nil
}

// Create persists a new task.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	// Pick up the generated ID and timestamps.
	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// Update modifies an existing task.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	// Select all mutable columns so zero values (an empty description, a
	// cleared completion flag) are written rather than skipped.
	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ?", task.ID).
		Select("title", "description", "completed", "updated_at").
		Updates(taskM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task by its identifier.
func (repo *taskRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.TaskModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

func (repo *taskRepository) applyFilter(db *gorm.DB) *gorm.DB {
	return db.Model(&model.TaskModel{})
}

func (repo *taskRepository) applyCompleted(db *gorm.DB, filter repository.TaskFilter) *gorm.DB {
	if filter.Completed != nil {
		return db.Where("completed = ?", *filter.Completed)
	}

	return db
}

// --- Mapper Functions ---

func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
	}
}
