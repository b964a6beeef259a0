package service

import (
	"context"
	"testing"

	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/repository"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

func newTestScheduleService(students *fakeStudentRepo, events *fakeEventRepo) *ScheduleService {
	return NewScheduleService(ScheduleDependencies{
		EventRepo:   events,
		StudentRepo: students,
	})
}

func TestCreateEventDefaults(t *testing.T) {
	students := &fakeStudentRepo{students: []domain.Student{
		{ID: "s1", Name: "Ana", Status: domain.StudentStatusActive, StaffHandle: "bruno.costa", Service: "speech therapy"},
	}}
	eventsRepo := &fakeEventRepo{}
	svc := newTestScheduleService(students, eventsRepo)

	event, err := svc.CreateEvent(context.Background(), teacherMember(), EventInput{
		StudentID: "s1",
		Date:      "2024-05-02",
		StartTime: "14:30",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.Title != "Ana" {
		t.Errorf("title = %q, want student name", event.Title)
	}
	if event.Service != "speech therapy" {
		t.Errorf("service = %q, want inherited service", event.Service)
	}
	if event.StaffHandle != "bruno.costa" {
		t.Errorf("staff handle = %q, want owner handle", event.StaffHandle)
	}
	if event.Status != domain.EventStatusScheduled {
		t.Errorf("status = %s, want SCHEDULED", event.Status)
	}
}

func TestCreateEventRejectsBadDate(t *testing.T) {
	students := &fakeStudentRepo{students: []domain.Student{
		{ID: "s1", Name: "Ana", StaffHandle: "bruno.costa"},
	}}
	svc := newTestScheduleService(students, &fakeEventRepo{})

	if _, err := svc.CreateEvent(context.Background(), teacherMember(), EventInput{StudentID: "s1", Date: "05/02/2024"}); err == nil {
		t.Error("expected error for malformed date")
	}
	if _, err := svc.CreateEvent(context.Background(), teacherMember(), EventInput{StudentID: "s1", Date: "2024-05-02", StartTime: "2pm"}); err == nil {
		t.Error("expected error for malformed start time")
	}
}

func TestEventStatusTransitions(t *testing.T) {
	tests := []struct {
		from    domain.EventStatus
		to      domain.EventStatus
		allowed bool
	}{
		{domain.EventStatusScheduled, domain.EventStatusCompleted, true},
		{domain.EventStatusScheduled, domain.EventStatusCancelled, true},
		{domain.EventStatusCompleted, domain.EventStatusScheduled, false},
		{domain.EventStatusCompleted, domain.EventStatusCancelled, false},
		{domain.EventStatusCancelled, domain.EventStatusCompleted, false},
		{domain.EventStatusScheduled, domain.EventStatusScheduled, false},
	}
	for _, tc := range tests {
		if got := isEventTransitionAllowed(tc.from, tc.to); got != tc.allowed {
			t.Errorf("transition %s -> %s = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestUpdateEventStatusScoped(t *testing.T) {
	students := &fakeStudentRepo{students: []domain.Student{
		{ID: "s1", Name: "Ana", StaffHandle: "gabriella.souza"},
	}}
	eventsRepo := &fakeEventRepo{events: []domain.ClassEvent{
		{ID: "e1", StudentID: "s1", StaffHandle: "gabriella.souza", Status: domain.EventStatusScheduled},
	}}
	svc := newTestScheduleService(students, eventsRepo)

	// Another teacher cannot touch the session.
	_, err := svc.UpdateEventStatus(context.Background(), teacherMember(), "e1", domain.EventStatusCompleted)
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}

	event, err := svc.UpdateEventStatus(context.Background(), adminMember(), "e1", domain.EventStatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if event.Status != domain.EventStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", event.Status)
	}

	// Terminal states stick.
	if _, err := svc.UpdateEventStatus(context.Background(), adminMember(), "e1", domain.EventStatusScheduled); err == nil {
		t.Error("expected error reopening completed session")
	}
}

func TestListEventsScopedToTeacher(t *testing.T) {
	eventsRepo := &fakeEventRepo{events: []domain.ClassEvent{
		{ID: "e1", StaffHandle: "bruno.costa", Status: domain.EventStatusScheduled},
		{ID: "e2", StaffHandle: "gabriella.souza", Status: domain.EventStatusScheduled},
	}}
	svc := newTestScheduleService(&fakeStudentRepo{}, eventsRepo)

	list, err := svc.ListEvents(context.Background(), teacherMember(), repository.EventFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "e1" {
		t.Errorf("teacher sees %d events, want only own", len(list))
	}

	all, err := svc.ListEvents(context.Background(), adminMember(), repository.EventFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d events, want 2", len(all))
	}
}
