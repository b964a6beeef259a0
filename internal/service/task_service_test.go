package service

import (
	"context"
	"testing"

	"github.com/practice-kit/practice-service/internal/domain"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

func newTestTaskService(tasks *fakeTaskRepo) *TaskService {
	return NewTaskService(TaskDependencies{
		TaskRepo:  tasks,
		StaffRepo: rosterRepo(),
	})
}

func TestCreateTaskAdminOnly(t *testing.T) {
	svc := newTestTaskService(&fakeTaskRepo{})

	_, err := svc.CreateTask(context.Background(), teacherMember(), TaskInput{Title: "inventory", Assignees: []string{"bruno.costa"}})
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN for teacher, got %v", err)
	}

	task, err := svc.CreateTask(context.Background(), adminMember(), TaskInput{Title: "inventory", Assignees: []string{"Bruno.Costa"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Status != domain.TaskStatusTodo {
		t.Errorf("status = %s, want TODO", task.Status)
	}
	if len(task.Assignees) != 1 || task.Assignees[0] != "bruno.costa" {
		t.Errorf("assignees = %v, want normalized handle", task.Assignees)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc := newTestTaskService(&fakeTaskRepo{})

	if _, err := svc.CreateTask(context.Background(), adminMember(), TaskInput{Title: "x"}); err == nil {
		t.Error("expected error for missing assignees")
	}
	if _, err := svc.CreateTask(context.Background(), adminMember(), TaskInput{Assignees: []string{"bruno.costa"}}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := svc.CreateTask(context.Background(), adminMember(), TaskInput{Title: "x", Assignees: []string{"ghost"}}); err == nil {
		t.Error("expected error for unknown assignee")
	}
}

func TestTaskStatusMovesByAssignee(t *testing.T) {
	tasks := &fakeTaskRepo{tasks: []domain.Task{
		{ID: "t1", Title: "inventory", Assignees: []string{"bruno.costa"}, Status: domain.TaskStatusTodo},
		{ID: "t2", Title: "reports", Assignees: []string{"gabriella.souza"}, Status: domain.TaskStatusTodo},
	}}
	svc := newTestTaskService(tasks)

	task, err := svc.UpdateTaskStatus(context.Background(), teacherMember(), "t1", domain.TaskStatusInProgress)
	if err != nil {
		t.Fatalf("move own task: %v", err)
	}
	if task.Status != domain.TaskStatusInProgress {
		t.Errorf("status = %s", task.Status)
	}

	_, err = svc.UpdateTaskStatus(context.Background(), teacherMember(), "t2", domain.TaskStatusDone)
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN for other member's task, got %v", err)
	}

	// Done tasks may reopen.
	if _, err := svc.UpdateTaskStatus(context.Background(), teacherMember(), "t1", domain.TaskStatusDone); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := svc.UpdateTaskStatus(context.Background(), teacherMember(), "t1", domain.TaskStatusTodo); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestTaskStatusRejectsNoop(t *testing.T) {
	tasks := &fakeTaskRepo{tasks: []domain.Task{
		{ID: "t1", Title: "inventory", Assignees: []string{"bruno.costa"}, Status: domain.TaskStatusTodo},
	}}
	svc := newTestTaskService(tasks)

	if _, err := svc.UpdateTaskStatus(context.Background(), teacherMember(), "t1", domain.TaskStatusTodo); err == nil {
		t.Error("expected error for same-state transition")
	}
	if _, err := svc.UpdateTaskStatus(context.Background(), teacherMember(), "t1", domain.TaskStatus("ARCHIVED")); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestListTasksScoped(t *testing.T) {
	tasks := &fakeTaskRepo{tasks: []domain.Task{
		{ID: "t1", Assignees: []string{"bruno.costa"}, Status: domain.TaskStatusTodo},
		{ID: "t2", Assignees: []string{"gabriella.souza"}, Status: domain.TaskStatusTodo},
	}}
	svc := newTestTaskService(tasks)

	mine, err := svc.ListTasks(context.Background(), teacherMember(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "t1" {
		t.Errorf("teacher sees %d tasks, want only assigned", len(mine))
	}

	all, err := svc.ListTasks(context.Background(), adminMember(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d tasks, want 2", len(all))
	}
}
