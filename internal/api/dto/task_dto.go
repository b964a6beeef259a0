package dto

import (
	"time"

	"github.com/practice-kit/practice-service/internal/domain"
)

// TaskRequest payload for create and update.
type TaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Assignees   []string `json:"assignees"`
}

// TaskStatusRequest payload for workflow moves.
type TaskStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

// TaskResponse is the wire form of a shared task.
type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Assignees   []string          `json:"assignees"`
	Status      domain.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
