package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/practice-kit/practice-service/internal/access"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/events"
	"github.com/practice-kit/practice-service/internal/repository"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

// StudentService manages client records and their progress logs. Reads
// and edits are scoped to the assigned staff member unless the actor is
// an admin.
type StudentService struct {
	students   repository.StudentRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
}

// StudentDependencies wires repositories into the service.
type StudentDependencies struct {
	StudentRepo repository.StudentRepository
	StaffRepo   repository.StaffRepository
	Dispatcher  events.Dispatcher
}

// NewStudentService builds the service.
func NewStudentService(deps StudentDependencies) *StudentService {
	return &StudentService{
		students:   deps.StudentRepo,
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
	}
}

// StudentInput carries the writable fields of a student record.
type StudentInput struct {
	Name          string
	Status        domain.StudentStatus
	BirthDate     *string
	ParentName    string
	ParentContact string
	Address       string
	Service       string
	StaffHandle   string
	MonthlyFee    float64
	Observations  string
}

// CreateStudent registers a new student assigned to a staff handle.
// Teachers may only create students assigned to themselves.
func (s *StudentService) CreateStudent(ctx context.Context, actor *domain.StaffMember, input StudentInput) (*domain.Student, error) {
	student, err := s.buildStudent(ctx, actor, input)
	if err != nil {
		return nil, err
	}
	if !access.CanEditStudent(actor, student) {
		return nil, apperrors.NewForbidden("students must be assigned to yourself")
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionStudents, events.OpCreated, student.ID, student.StaffHandle)
	return student, nil
}

// UpdateStudent replaces the record's writable fields.
func (s *StudentService) UpdateStudent(ctx context.Context, actor *domain.StaffMember, id string, input StudentInput) (*domain.Student, error) {
	current, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditStudent(actor, current) {
		return nil, apperrors.NewForbidden("student is assigned to another staff member")
	}

	updated, err := s.buildStudent(ctx, actor, input)
	if err != nil {
		return nil, err
	}
	if !access.CanEditStudent(actor, updated) {
		return nil, apperrors.NewForbidden("cannot reassign student to another staff member")
	}
	updated.ID = current.ID

	if err := s.students.Update(ctx, updated); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("student", map[string]any{"id": id})
		}
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionStudents, events.OpUpdated, updated.ID, updated.StaffHandle)
	return updated, nil
}

// DeleteStudent removes a student record. Progress entries go with it.
func (s *StudentService) DeleteStudent(ctx context.Context, actor *domain.StaffMember, id string) error {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanEditStudent(actor, student) {
		return apperrors.NewForbidden("student is assigned to another staff member")
	}

	if err := s.students.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("student", map[string]any{"id": id})
		}
		return err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionStudents, events.OpDeleted, id, student.StaffHandle)
	return nil
}

// GetStudent fetches one student, enforcing visibility.
func (s *StudentService) GetStudent(ctx context.Context, actor *domain.StaffMember, id string) (*domain.Student, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanViewStudent(actor, student) {
		return nil, apperrors.NewForbidden("student is assigned to another staff member")
	}
	return student, nil
}

// ListStudents returns the roster visible to the actor. Admins see all
// students; teachers only their own assignments.
func (s *StudentService) ListStudents(ctx context.Context, actor *domain.StaffMember, status *domain.StudentStatus) ([]domain.Student, error) {
	filter := repository.StudentFilter{Status: status}
	if !actor.IsAdmin() {
		handle := actor.Handle
		filter.StaffHandle = &handle
	}
	return s.students.List(ctx, filter)
}

// AppendProgress adds an entry to the student's progress log. The author
// is always the acting member; entries are never edited afterwards.
func (s *StudentService) AppendProgress(ctx context.Context, actor *domain.StaffMember, studentID, content string) (*domain.ProgressEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("progress content is required", nil)
	}

	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !access.CanEditStudent(actor, student) {
		return nil, apperrors.NewForbidden("student is assigned to another staff member")
	}

	entry := &domain.ProgressEntry{
		StudentID: student.ID,
		Author:    actor.Handle,
		Content:   strings.TrimSpace(content),
	}
	if err := s.students.AppendProgressEntry(ctx, entry); err != nil {
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionStudents, events.OpUpdated, student.ID, student.StaffHandle)
	return entry, nil
}

// ListProgress returns the log for one student, oldest first.
func (s *StudentService) ListProgress(ctx context.Context, actor *domain.StaffMember, studentID string) ([]domain.ProgressEntry, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewStudent(actor, student) {
		return nil, apperrors.NewForbidden("student is assigned to another staff member")
	}
	return s.students.ListProgressEntries(ctx, studentID)
}

func (s *StudentService) getStudent(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("student", map[string]any{"id": id})
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentService) buildStudent(ctx context.Context, actor *domain.StaffMember, input StudentInput) (*domain.Student, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if input.Status != domain.StudentStatusActive && input.Status != domain.StudentStatusInactive {
		details["status"] = "must be ACTIVE or INACTIVE"
	}
	if input.MonthlyFee < 0 {
		details["monthly_fee"] = "must not be negative"
	}

	handle := domain.NormalizeHandle(input.StaffHandle)
	if handle == "" {
		handle = actor.Handle
	} else if _, err := s.staff.GetByHandle(ctx, handle); err != nil {
		if err == pgx.ErrNoRows {
			details["staff_handle"] = "unknown staff member"
		} else {
			return nil, err
		}
	}

	var birthDate *time.Time
	if input.BirthDate != nil && *input.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", *input.BirthDate)
		if err != nil {
			details["birth_date"] = "must be YYYY-MM-DD"
		} else {
			birthDate = &parsed
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid student data", details)
	}

	return &domain.Student{
		Name:          strings.TrimSpace(input.Name),
		Status:        input.Status,
		BirthDate:     birthDate,
		ParentName:    input.ParentName,
		ParentContact: input.ParentContact,
		Address:       input.Address,
		Service:       input.Service,
		StaffHandle:   handle,
		MonthlyFee:    input.MonthlyFee,
		Observations:  input.Observations,
	}, nil
}
