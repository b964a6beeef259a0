package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/practice-kit/practice-service/internal/access"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/events"
	"github.com/practice-kit/practice-service/internal/repository"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

// allowedTaskTransitions maps each task status to its legal successors.
// Tasks can move back and forth until deleted.
var allowedTaskTransitions = map[domain.TaskStatus][]domain.TaskStatus{
	domain.TaskStatusTodo:       {domain.TaskStatusInProgress, domain.TaskStatusDone},
	domain.TaskStatusInProgress: {domain.TaskStatusTodo, domain.TaskStatusDone},
	domain.TaskStatusDone:       {domain.TaskStatusTodo, domain.TaskStatusInProgress},
}

func isTaskTransitionAllowed(from, to domain.TaskStatus) bool {
	for _, allowed := range allowedTaskTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TaskService manages shared to-dos. Creation and assignment are
// admin-only; assignees move their own tasks through the workflow.
type TaskService struct {
	tasks      repository.TaskRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
}

// TaskDependencies wires repositories into the service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
}

// NewTaskService builds the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TaskInput carries the writable fields of a task.
type TaskInput struct {
	Title       string
	Description string
	Assignees   []string
}

// CreateTask opens a new task assigned to one or more staff handles.
func (s *TaskService) CreateTask(ctx context.Context, actor *domain.StaffMember, input TaskInput) (*domain.Task, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("task creation requires admin role")
	}
	assignees, err := s.resolveAssignees(ctx, input.Assignees)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("task title is required", nil)
	}

	task := &domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Assignees:   assignees,
		Status:      domain.TaskStatusTodo,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionTasks, events.OpCreated, task.ID, "")
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        events.EventTaskAssigned,
		ActorHandle: actor.Handle,
		Payload: events.TaskAssignedPayload{
			TaskID:    task.ID,
			Assignees: task.Assignees,
		},
	})
	return task, nil
}

// UpdateTask edits title, description and assignment. Admin-only.
func (s *TaskService) UpdateTask(ctx context.Context, actor *domain.StaffMember, id string, input TaskInput) (*domain.Task, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("task editing requires admin role")
	}

	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	assignees, err := s.resolveAssignees(ctx, input.Assignees)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("task title is required", nil)
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.Assignees = assignees

	if err := s.tasks.Update(ctx, task); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionTasks, events.OpUpdated, task.ID, "")
	return task, nil
}

// UpdateTaskStatus moves a task through its workflow. Assignees and
// admins may move it.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, actor *domain.StaffMember, id string, status domain.TaskStatus) (*domain.Task, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditTask(actor, task) {
		return nil, apperrors.NewForbidden("task is assigned to other staff members")
	}
	if !isTaskTransitionAllowed(task.Status, status) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": task.Status,
			"to":   status,
		})
	}

	task.Status = status
	if err := s.tasks.Update(ctx, task); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionTasks, events.OpUpdated, task.ID, "")
	return task, nil
}

// DeleteTask removes a task. Admin-only.
func (s *TaskService) DeleteTask(ctx context.Context, actor *domain.StaffMember, id string) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("task deletion requires admin role")
	}
	if _, err := s.getTask(ctx, id); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionTasks, events.OpDeleted, id, "")
	return nil
}

// GetTask fetches one task, enforcing assignee visibility.
func (s *TaskService) GetTask(ctx context.Context, actor *domain.StaffMember, id string) (*domain.Task, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanViewTask(actor, task) {
		return nil, apperrors.NewForbidden("task is assigned to other staff members")
	}
	return task, nil
}

// ListTasks returns tasks visible to the actor. Admins see everything;
// other members only tasks assigned to them.
func (s *TaskService) ListTasks(ctx context.Context, actor *domain.StaffMember, status *domain.TaskStatus) ([]domain.Task, error) {
	filter := repository.TaskFilter{Status: status}
	if !actor.IsAdmin() {
		handle := actor.Handle
		filter.Assignee = &handle
	}
	return s.tasks.List(ctx, filter)
}

func (s *TaskService) getTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) resolveAssignees(ctx context.Context, handles []string) ([]string, error) {
	if len(handles) == 0 {
		return nil, apperrors.NewValidationError("at least one assignee is required", nil)
	}
	resolved := make([]string, 0, len(handles))
	for _, h := range handles {
		handle := domain.NormalizeHandle(h)
		if _, err := s.staff.GetByHandle(ctx, handle); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("unknown staff handle", map[string]any{"handle": h})
			}
			return nil, err
		}
		resolved = append(resolved, handle)
	}
	return resolved, nil
}
