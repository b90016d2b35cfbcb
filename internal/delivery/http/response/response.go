// Package response renders the API's JSON body shapes.
package response

import (
	"time"

	"taskboard/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// User is the wire representation of an account. The password hash never
// leaves the domain layer.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// NewUser maps an account entity to its wire form.
func NewUser(user *entity.User) *User {
	return &User{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role.String(),
	}
}

// Task is the wire representation of a task.
type Task struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask maps a task entity to its wire form.
func NewTask(task *entity.Task) *Task {
	return &Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskList maps a slice of task entities.
func NewTaskList(tasks []*entity.Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTask(task))
	}

	return out
}

// Paginated is the page envelope for list endpoints.
type Paginated struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// Message renders {"message": ...}.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, map[string]string{"message": message})
}

// MessageWithUser renders {"message": ..., "user": {...}}.
func MessageWithUser(c echo.Context, statusCode int, message string, user *entity.User) error {
	return c.JSON(statusCode, map[string]any{
		"message": message,
		"user":    NewUser(user),
	})
}

// Error renders the single-cause failure shape {"error": ...}.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, map[string]string{"error": message})
}

// FieldErrors renders the validation failure shape {"errors": {field: message}}.
func FieldErrors(c echo.Context, statusCode int, fields map[string]string) error {
	return c.JSON(statusCode, map[string]any{"errors": fields})
}
