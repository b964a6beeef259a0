package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/repository"
)

type fakeStudentRepo struct {
	students []domain.Student
	progress []domain.ProgressEntry
	nextID   int
}

func (f *fakeStudentRepo) Create(_ context.Context, student *domain.Student) error {
	f.nextID++
	student.ID = fmt.Sprintf("student-%d", f.nextID)
	f.students = append(f.students, *student)
	return nil
}

func (f *fakeStudentRepo) Update(_ context.Context, student *domain.Student) error {
	for i := range f.students {
		if f.students[i].ID == student.ID {
			f.students[i] = *student
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStudentRepo) Delete(_ context.Context, id string) error {
	for i := range f.students {
		if f.students[i].ID == id {
			f.students = append(f.students[:i], f.students[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id string) (*domain.Student, error) {
	for i := range f.students {
		if f.students[i].ID == id {
			student := f.students[i]
			return &student, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStudentRepo) List(_ context.Context, filter repository.StudentFilter) ([]domain.Student, error) {
	var result []domain.Student
	for _, s := range f.students {
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.StaffHandle != nil && s.StaffHandle != *filter.StaffHandle {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeStudentRepo) AppendProgressEntry(_ context.Context, entry *domain.ProgressEntry) error {
	f.nextID++
	entry.ID = fmt.Sprintf("progress-%d", f.nextID)
	f.progress = append(f.progress, *entry)
	return nil
}

func (f *fakeStudentRepo) ListProgressEntries(_ context.Context, studentID string) ([]domain.ProgressEntry, error) {
	var result []domain.ProgressEntry
	for _, e := range f.progress {
		if e.StudentID == studentID {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeBillingRepo struct {
	entries []domain.BillingEntry
}

func (f *fakeBillingRepo) Create(_ context.Context, entry *domain.BillingEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeBillingRepo) Update(_ context.Context, entry *domain.BillingEntry) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries[i] = *entry
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeBillingRepo) Delete(_ context.Context, id string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeBillingRepo) GetByID(_ context.Context, id string) (*domain.BillingEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			entry := f.entries[i]
			return &entry, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBillingRepo) List(_ context.Context, filter repository.BillingFilter) ([]domain.BillingEntry, error) {
	var result []domain.BillingEntry
	for _, e := range f.entries {
		if filter.StudentID != nil && e.StudentID != *filter.StudentID {
			continue
		}
		if filter.PeriodPrefix != nil && !domain.PeriodMatches(e.Period, *filter.PeriodPrefix) {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeBillingRepo) ExistsForStudentPeriod(_ context.Context, studentID, period string) (bool, error) {
	for _, e := range f.entries {
		if e.StudentID == studentID && e.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBillingRepo) CreateBatch(_ context.Context, entries []domain.BillingEntry) error {
	f.entries = append(f.entries, entries...)
	return nil
}

type fakeEventRepo struct {
	events []domain.ClassEvent
	nextID int
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.ClassEvent) error {
	f.nextID++
	event.ID = fmt.Sprintf("event-%d", f.nextID)
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *domain.ClassEvent) error {
	for i := range f.events {
		if f.events[i].ID == event.ID {
			f.events[i] = *event
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.ClassEvent, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			event := f.events[i]
			return &event, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEventRepo) List(_ context.Context, filter repository.EventFilter) ([]domain.ClassEvent, error) {
	var result []domain.ClassEvent
	for _, e := range f.events {
		if filter.StaffHandle != nil && e.StaffHandle != *filter.StaffHandle {
			continue
		}
		if filter.StudentID != nil && e.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

type fakeNoticeRepo struct {
	notices []domain.Notice
	nextID  int
}

func (f *fakeNoticeRepo) Create(_ context.Context, notice *domain.Notice) error {
	f.nextID++
	notice.ID = fmt.Sprintf("notice-%d", f.nextID)
	f.notices = append(f.notices, *notice)
	return nil
}

func (f *fakeNoticeRepo) Update(_ context.Context, notice *domain.Notice) error {
	for i := range f.notices {
		if f.notices[i].ID == notice.ID {
			f.notices[i] = *notice
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNoticeRepo) Delete(_ context.Context, id string) error {
	for i := range f.notices {
		if f.notices[i].ID == id {
			f.notices = append(f.notices[:i], f.notices[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNoticeRepo) GetByID(_ context.Context, id string) (*domain.Notice, error) {
	for i := range f.notices {
		if f.notices[i].ID == id {
			notice := f.notices[i]
			return &notice, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeNoticeRepo) List(_ context.Context) ([]domain.Notice, error) {
	return append([]domain.Notice{}, f.notices...), nil
}

type fakeTaskRepo struct {
	tasks  []domain.Task
	nextID int
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	f.nextID++
	task.ID = fmt.Sprintf("task-%d", f.nextID)
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = *task
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			task := f.tasks[i]
			return &task, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var result []domain.Task
	for _, task := range f.tasks {
		if filter.Assignee != nil && !task.AssignedTo(*filter.Assignee) {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		result = append(result, task)
	}
	return result, nil
}

type fakeStaffRepo struct {
	members []domain.StaffMember
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	staff.ID = fmt.Sprintf("staff-%d", len(f.members)+1)
	f.members = append(f.members, *staff)
	return nil
}

func (f *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffMember) error {
	for i := range f.members {
		if f.members[i].ID == staff.ID {
			f.members[i] = *staff
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			member := f.members[i]
			return &member, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	for i := range f.members {
		if f.members[i].Email == email {
			member := f.members[i]
			return &member, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) GetByHandle(_ context.Context, handle string) (*domain.StaffMember, error) {
	for i := range f.members {
		if f.members[i].Handle == domain.NormalizeHandle(handle) {
			member := f.members[i]
			return &member, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) List(_ context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	var result []domain.StaffMember
	for _, m := range f.members {
		if filter.Role != nil && m.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && m.Active != *filter.Active {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}
