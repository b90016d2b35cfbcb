package entity

import "time"

// Task is a shared to-do item. Tasks are not owned by a particular user: any
// authenticated user may create one, while updates and deletes are reserved
// for administrators.
type Task struct {
	ID          uint      // Auto-incrementing identifier; list ordering follows it.
	Title       string    // Required short summary.
	Description string    // Optional free-form details.
	Completed   bool      // Completion flag, defaults to false.
	CreatedAt   time.Time // Timestamp of when this task was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this task.
}
