package domain

import "time"

// TaskStatus enumerates workflow states for shared tasks.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Task is a shared to-do assigned to one or more staff members.
type Task struct {
	ID          string
	Title       string
	Description string
	Assignees   []string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AssignedTo reports whether the handle appears in the assignee set.
func (t *Task) AssignedTo(handle string) bool {
	for _, a := range t.Assignees {
		if a == handle {
			return true
		}
	}
	return false
}
