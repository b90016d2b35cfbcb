package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"taskboard/internal/delivery/http/response"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CreateTaskRequest is the task creation payload.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTaskRequest is the partial-update payload: absent fields keep their
// stored value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskHandler holds dependencies for task-related handlers.
type TaskHandler struct {
	uc     usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns one page of tasks, optionally filtered on the completion flag.
func (h *TaskHandler) List(c echo.Context) error {
	input := usecase.ListTasksInput{
		Page:     intQueryParam(c, "page"),
		PageSize: intQueryParam(c, "page_size"),
	}

	if raw := c.QueryParam("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return domainerrors.NewFieldError("completed", "Must be a valid boolean.")
		}
		input.Completed = &completed
	}

	output, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Paginated{
		Count:    output.Count,
		Next:     pageURL(c, output.Page+1, output.HasNext()),
		Previous: pageURL(c, output.Page-1, output.HasPrevious()),
		Results:  response.NewTaskList(output.Tasks),
	})
}

// Create persists a new task.
func (h *TaskHandler) Create(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.NewFieldError(domainerrors.NonFieldKey, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.uc.Create(c.Request().Context(), usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, response.NewTask(task))
}

// Get returns a single task.
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewTask(task))
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.NewFieldError(domainerrors.NonFieldKey, "Invalid request body")
	}
	if req.Title != nil && *req.Title == "" {
		return domainerrors.NewFieldError("title", "This field is required.")
	}

	task, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewTask(task))
}

// Delete removes a task.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// taskID parses the path parameter. A non-numeric id behaves like a missing
// resource.
func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, domainerrors.ErrTaskNotFound
	}

	return uint(id), nil
}

func intQueryParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}

// pageURL builds an absolute link to a neighboring page, preserving the
// other query parameters.
func pageURL(c echo.Context, page int, exists bool) *string {
	if !exists {
		return nil
	}

	req := c.Request()

	query := url.Values{}
	for key, values := range req.URL.Query() {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	query.Set("page", strconv.Itoa(page))

	link := fmt.Sprintf("%s://%s%s?%s", c.Scheme(), req.Host, req.URL.Path, query.Encode())

	return &link
}
