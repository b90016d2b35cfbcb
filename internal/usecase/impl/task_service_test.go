package impl

import (
	"context"
	"fmt"
	"testing"

	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateAndGet(t *testing.T) {
	svc := newTestTaskService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, usecase.CreateTaskInput{
		Title:       "Write report",
		Description: "Quarterly numbers",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Completed)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "Quarterly numbers", got.Description)
}

func TestTaskService_GetMissing(t *testing.T) {
	svc := newTestTaskService(t)

	_, err := svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestTaskService_PartialUpdate(t *testing.T) {
	svc := newTestTaskService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, usecase.CreateTaskInput{
		Title:       "Original title",
		Description: "Original description",
	})
	require.NoError(t, err)

	completed := true
	updated, err := svc.Update(ctx, created.ID, usecase.UpdateTaskInput{Completed: &completed})
	require.NoError(t, err)

	// Only the completion flag changes; the rest keeps its stored value.
	assert.True(t, updated.Completed)
	assert.Equal(t, "Original title", updated.Title)
	assert.Equal(t, "Original description", updated.Description)

	newTitle := "Renamed"
	updated, err = svc.Update(ctx, created.ID, usecase.UpdateTaskInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.Completed)

	_, err = svc.Update(ctx, 9999, usecase.UpdateTaskInput{Title: &newTitle})
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestTaskService_Delete(t *testing.T) {
	svc := newTestTaskService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, usecase.CreateTaskInput{Title: "Disposable"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domainerrors.ErrTaskNotFound)
}

func TestTaskService_ListPagination(t *testing.T) {
	svc := newTestTaskService(t)
	ctx := context.Background()

	for i := range 15 {
		_, err := svc.Create(ctx, usecase.CreateTaskInput{
			Title:     fmt.Sprintf("Task %02d", i+1),
			Completed: i%2 == 0,
		})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, usecase.ListTasksInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 15, first.Count)
	assert.Len(t, first.Tasks, usecase.DefaultPageSize)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	second, err := svc.List(ctx, usecase.ListTasksInput{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Tasks, 5)
	assert.False(t, second.HasNext())
	assert.True(t, second.HasPrevious())

	// Insertion order by id keeps pages stable and non-overlapping.
	assert.Equal(t, "Task 01", first.Tasks[0].Title)
	assert.Equal(t, "Task 11", second.Tasks[0].Title)

	_, err = svc.List(ctx, usecase.ListTasksInput{Page: 3})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPage)
}

func TestTaskService_ListCompletedFilter(t *testing.T) {
	svc := newTestTaskService(t)
	ctx := context.Background()

	for i := range 6 {
		_, err := svc.Create(ctx, usecase.CreateTaskInput{
			Title:     fmt.Sprintf("Task %d", i+1),
			Completed: i < 2,
		})
		require.NoError(t, err)
	}

	completed := true
	output, err := svc.List(ctx, usecase.ListTasksInput{Completed: &completed})
	require.NoError(t, err)
	assert.EqualValues(t, 2, output.Count)
	for _, task := range output.Tasks {
		assert.True(t, task.Completed)
	}

	completed = false
	output, err = svc.List(ctx, usecase.ListTasksInput{Completed: &completed})
	require.NoError(t, err)
	assert.EqualValues(t, 4, output.Count)
	for _, task := range output.Tasks {
		assert.False(t, task.Completed)
	}
}
