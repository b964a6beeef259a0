// Package access holds the role-scoped visibility rules. Every rule is a
// pure function over an authenticated staff member and a record snapshot;
// the service layer applies them on each read and mutation.
package access

import (
	"github.com/practice-kit/practice-service/internal/domain"
)

// CanManageStaff reports whether the member may read or edit the staff
// collection beyond their own profile.
func CanManageStaff(staff *domain.StaffMember) bool {
	return staff.IsAdmin()
}

// CanViewFinancials gates billing entries, misc income and expenses.
// Regular staff have no visibility into billing data.
func CanViewFinancials(staff *domain.StaffMember) bool {
	return staff.IsAdmin()
}

// CanViewStudent reports whether the member may see a student record.
func CanViewStudent(staff *domain.StaffMember, student *domain.Student) bool {
	return staff.IsAdmin() || student.StaffHandle == staff.Handle
}

// CanEditStudent matches CanViewStudent; owning staff edit their own records.
func CanEditStudent(staff *domain.StaffMember, student *domain.Student) bool {
	return CanViewStudent(staff, student)
}

// CanViewEvent reports whether the member may see a calendar event.
func CanViewEvent(staff *domain.StaffMember, event *domain.ClassEvent) bool {
	return staff.IsAdmin() || event.StaffHandle == staff.Handle
}

// CanEditEvent matches CanViewEvent.
func CanEditEvent(staff *domain.StaffMember, event *domain.ClassEvent) bool {
	return CanViewEvent(staff, event)
}

// CanViewTask reports whether the member may see a task.
func CanViewTask(staff *domain.StaffMember, task *domain.Task) bool {
	return staff.IsAdmin() || task.AssignedTo(staff.Handle)
}

// CanEditTask matches CanViewTask; assignees may move their own tasks.
func CanEditTask(staff *domain.StaffMember, task *domain.Task) bool {
	return CanViewTask(staff, task)
}

// CanViewNotice reports whether the notice's audience covers the member.
func CanViewNotice(staff *domain.StaffMember, notice *domain.Notice) bool {
	return staff.IsAdmin() || notice.Audience.Includes(staff.Handle) || notice.Author == staff.Handle
}

// CanEditNotice restricts edits and deletes to the author; admins may edit
// any notice.
func CanEditNotice(staff *domain.StaffMember, notice *domain.Notice) bool {
	return staff.IsAdmin() || notice.Author == staff.Handle
}

// FilterStudents returns the students visible to the member.
func FilterStudents(staff *domain.StaffMember, students []domain.Student) []domain.Student {
	if staff.IsAdmin() {
		return students
	}
	visible := make([]domain.Student, 0, len(students))
	for _, s := range students {
		if s.StaffHandle == staff.Handle {
			visible = append(visible, s)
		}
	}
	return visible
}

// FilterEvents returns the calendar events visible to the member.
func FilterEvents(staff *domain.StaffMember, events []domain.ClassEvent) []domain.ClassEvent {
	if staff.IsAdmin() {
		return events
	}
	visible := make([]domain.ClassEvent, 0, len(events))
	for _, e := range events {
		if e.StaffHandle == staff.Handle {
			visible = append(visible, e)
		}
	}
	return visible
}

// FilterTasks returns the tasks visible to the member.
func FilterTasks(staff *domain.StaffMember, tasks []domain.Task) []domain.Task {
	if staff.IsAdmin() {
		return tasks
	}
	visible := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedTo(staff.Handle) {
			visible = append(visible, t)
		}
	}
	return visible
}

// FilterNotices returns the notices addressed to the member.
func FilterNotices(staff *domain.StaffMember, notices []domain.Notice) []domain.Notice {
	if staff.IsAdmin() {
		return notices
	}
	visible := make([]domain.Notice, 0, len(notices))
	for _, n := range notices {
		if n.Audience.Includes(staff.Handle) || n.Author == staff.Handle {
			visible = append(visible, n)
		}
	}
	return visible
}
