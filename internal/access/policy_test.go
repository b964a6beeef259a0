package access

import (
	"testing"

	"github.com/practice-kit/practice-service/internal/domain"
)

var (
	admin   = &domain.StaffMember{ID: "1", Handle: "gabriella.souza", Role: domain.StaffRoleAdmin}
	teacher = &domain.StaffMember{ID: "2", Handle: "bruno.costa", Role: domain.StaffRoleTeacher}
)

func TestCanViewFinancials(t *testing.T) {
	if !CanViewFinancials(admin) {
		t.Error("admin must see financials")
	}
	if CanViewFinancials(teacher) {
		t.Error("teacher must not see financials")
	}
}

func TestStudentScoping(t *testing.T) {
	own := &domain.Student{ID: "s1", StaffHandle: "bruno.costa"}
	other := &domain.Student{ID: "s2", StaffHandle: "gabriella.souza"}

	if !CanViewStudent(teacher, own) {
		t.Error("teacher must see own student")
	}
	if CanViewStudent(teacher, other) {
		t.Error("teacher must not see another member's student")
	}
	if !CanViewStudent(admin, other) || !CanViewStudent(admin, own) {
		t.Error("admin must see every student")
	}
}

func TestFilterStudents(t *testing.T) {
	students := []domain.Student{
		{ID: "s1", StaffHandle: "bruno.costa"},
		{ID: "s2", StaffHandle: "gabriella.souza"},
		{ID: "s3", StaffHandle: "bruno.costa"},
	}

	mine := FilterStudents(teacher, students)
	if len(mine) != 2 {
		t.Fatalf("teacher sees %d students, want 2", len(mine))
	}
	for _, s := range mine {
		if s.StaffHandle != "bruno.costa" {
			t.Errorf("leaked student %s owned by %s", s.ID, s.StaffHandle)
		}
	}

	if all := FilterStudents(admin, students); len(all) != 3 {
		t.Errorf("admin sees %d students, want 3", len(all))
	}
}

func TestTaskScoping(t *testing.T) {
	assigned := &domain.Task{ID: "t1", Assignees: []string{"bruno.costa", "gabriella.souza"}}
	unassigned := &domain.Task{ID: "t2", Assignees: []string{"gabriella.souza"}}

	if !CanViewTask(teacher, assigned) {
		t.Error("assignee must see the task")
	}
	if CanViewTask(teacher, unassigned) {
		t.Error("non-assignee must not see the task")
	}
	if !CanEditTask(teacher, assigned) {
		t.Error("assignee must be able to move the task")
	}
}

func TestNoticeScoping(t *testing.T) {
	tests := []struct {
		name   string
		notice domain.Notice
		viewer *domain.StaffMember
		want   bool
	}{
		{"everyone", domain.Notice{Audience: domain.Audience{Everyone: true}}, teacher, true},
		{"addressed", domain.Notice{Audience: domain.Audience{Handles: []string{"bruno.costa"}}}, teacher, true},
		{"unaddressed", domain.Notice{Audience: domain.Audience{Handles: []string{"gabriella.souza"}}}, teacher, false},
		{"author sees own", domain.Notice{Author: "bruno.costa", Audience: domain.Audience{Handles: []string{"gabriella.souza"}}}, teacher, true},
		{"admin sees all", domain.Notice{Audience: domain.Audience{Handles: []string{"bruno.costa"}}}, admin, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanViewNotice(tc.viewer, &tc.notice); got != tc.want {
				t.Errorf("CanViewNotice = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanEditNotice(t *testing.T) {
	notice := &domain.Notice{Author: "bruno.costa", Audience: domain.Audience{Everyone: true}}

	if !CanEditNotice(teacher, notice) {
		t.Error("author must edit own notice")
	}
	if !CanEditNotice(admin, notice) {
		t.Error("admin must edit any notice")
	}
	other := &domain.StaffMember{ID: "3", Handle: "carla.lima", Role: domain.StaffRoleTeacher}
	if CanEditNotice(other, notice) {
		t.Error("non-author teacher must not edit the notice")
	}
}
