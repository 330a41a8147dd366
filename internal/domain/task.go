package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Title is capped at 100 characters and description at 500, enforced both at
// the request boundary and by the tasks table check constraints.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
