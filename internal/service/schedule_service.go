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

// allowedEventTransitions maps each status to the states it may move to.
// Completed and cancelled sessions are terminal.
var allowedEventTransitions = map[domain.EventStatus][]domain.EventStatus{
	domain.EventStatusScheduled: {domain.EventStatusCompleted, domain.EventStatusCancelled},
	domain.EventStatusCompleted: {},
	domain.EventStatusCancelled: {},
}

func isEventTransitionAllowed(from, to domain.EventStatus) bool {
	for _, allowed := range allowedEventTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ScheduleService manages the session calendar.
type ScheduleService struct {
	eventsRepo repository.EventRepository
	students   repository.StudentRepository
	dispatcher events.Dispatcher
}

// ScheduleDependencies wires repositories into the service.
type ScheduleDependencies struct {
	EventRepo   repository.EventRepository
	StudentRepo repository.StudentRepository
	Dispatcher  events.Dispatcher
}

// NewScheduleService builds the service.
func NewScheduleService(deps ScheduleDependencies) *ScheduleService {
	return &ScheduleService{
		eventsRepo: deps.EventRepo,
		students:   deps.StudentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// EventInput carries the writable fields of a calendar session.
type EventInput struct {
	StudentID    string
	Title        string
	Date         string
	StartTime    string
	Service      string
	Observations string
}

// CreateEvent schedules a session for a student. The event inherits the
// student's assigned staff handle and service when not set, and the title
// defaults to the student's name.
func (s *ScheduleService) CreateEvent(ctx context.Context, actor *domain.StaffMember, input EventInput) (*domain.ClassEvent, error) {
	student, err := s.students.GetByID(ctx, input.StudentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("student", map[string]any{"id": input.StudentID})
		}
		return nil, err
	}
	if !access.CanViewStudent(actor, student) {
		return nil, apperrors.NewForbidden("student is assigned to another staff member")
	}

	date, err := parseEventDate(input.Date)
	if err != nil {
		return nil, err
	}
	if err := validateStartTime(input.StartTime); err != nil {
		return nil, err
	}

	event := &domain.ClassEvent{
		StudentID:    student.ID,
		StaffHandle:  student.StaffHandle,
		Title:        strings.TrimSpace(input.Title),
		Date:         date,
		StartTime:    input.StartTime,
		Status:       domain.EventStatusScheduled,
		Service:      input.Service,
		Observations: input.Observations,
	}
	if event.Title == "" {
		event.Title = student.Name
	}
	if event.Service == "" {
		event.Service = student.Service
	}

	if err := s.eventsRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionEvents, events.OpCreated, event.ID, event.StaffHandle)
	return event, nil
}

// UpdateEvent edits scheduling details of a session that has not reached
// a terminal state. Status moves go through UpdateEventStatus.
func (s *ScheduleService) UpdateEvent(ctx context.Context, actor *domain.StaffMember, id string, input EventInput) (*domain.ClassEvent, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditEvent(actor, event) {
		return nil, apperrors.NewForbidden("session belongs to another staff member")
	}
	if event.Status != domain.EventStatusScheduled {
		return nil, apperrors.NewConflict("session already finalized", map[string]any{"status": event.Status})
	}

	if input.Date != "" {
		date, err := parseEventDate(input.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if input.StartTime != "" {
		if err := validateStartTime(input.StartTime); err != nil {
			return nil, err
		}
		event.StartTime = input.StartTime
	}
	if strings.TrimSpace(input.Title) != "" {
		event.Title = strings.TrimSpace(input.Title)
	}
	if input.Service != "" {
		event.Service = input.Service
	}
	event.Observations = input.Observations

	if err := s.eventsRepo.Update(ctx, event); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("class event", map[string]any{"id": id})
		}
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionEvents, events.OpUpdated, event.ID, event.StaffHandle)
	return event, nil
}

// UpdateEventStatus moves a session through its lifecycle. Only
// SCHEDULED sessions can change state; COMPLETED and CANCELLED stick.
func (s *ScheduleService) UpdateEventStatus(ctx context.Context, actor *domain.StaffMember, id string, status domain.EventStatus) (*domain.ClassEvent, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditEvent(actor, event) {
		return nil, apperrors.NewForbidden("session belongs to another staff member")
	}
	if !isEventTransitionAllowed(event.Status, status) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": event.Status,
			"to":   status,
		})
	}

	event.Status = status
	if err := s.eventsRepo.Update(ctx, event); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("class event", map[string]any{"id": id})
		}
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionEvents, events.OpUpdated, event.ID, event.StaffHandle)
	return event, nil
}

// DeleteEvent removes a session from the calendar.
func (s *ScheduleService) DeleteEvent(ctx context.Context, actor *domain.StaffMember, id string) error {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanEditEvent(actor, event) {
		return apperrors.NewForbidden("session belongs to another staff member")
	}

	if err := s.eventsRepo.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("class event", map[string]any{"id": id})
		}
		return err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionEvents, events.OpDeleted, id, event.StaffHandle)
	return nil
}

// GetEvent fetches one session, enforcing visibility.
func (s *ScheduleService) GetEvent(ctx context.Context, actor *domain.StaffMember, id string) (*domain.ClassEvent, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanViewEvent(actor, event) {
		return nil, apperrors.NewForbidden("session belongs to another staff member")
	}
	return event, nil
}

// ListEvents returns calendar sessions visible to the actor.
func (s *ScheduleService) ListEvents(ctx context.Context, actor *domain.StaffMember, filter repository.EventFilter) ([]domain.ClassEvent, error) {
	if !actor.IsAdmin() {
		handle := actor.Handle
		filter.StaffHandle = &handle
	}
	return s.eventsRepo.List(ctx, filter)
}

func (s *ScheduleService) getEvent(ctx context.Context, id string) (*domain.ClassEvent, error) {
	event, err := s.eventsRepo.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("class event", map[string]any{"id": id})
		}
		return nil, err
	}
	return event, nil
}

func parseEventDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": value})
	}
	return date, nil
}

func validateStartTime(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return apperrors.NewValidationError("start time must be HH:MM", map[string]any{"start_time": value})
	}
	return nil
}
