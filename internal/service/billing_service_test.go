package service

import (
	"context"
	"testing"
	"time"

	"github.com/practice-kit/practice-service/internal/config"
	"github.com/practice-kit/practice-service/internal/domain"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

func newTestBillingService(students *fakeStudentRepo, billing *fakeBillingRepo) *BillingService {
	return NewBillingService(config.BillingConfig{DescriptionPrefix: "Mensalidade"}, BillingDependencies{
		BillingRepo: billing,
		StudentRepo: students,
	})
}

func adminMember() *domain.StaffMember {
	return &domain.StaffMember{ID: "staff-admin", Handle: "gabriella.souza", Role: domain.StaffRoleAdmin, Active: true}
}

func teacherMember() *domain.StaffMember {
	return &domain.StaffMember{ID: "staff-teacher", Handle: "bruno.costa", Role: domain.StaffRoleTeacher, Active: true}
}

func TestGenerateMonthlyEntries(t *testing.T) {
	students := &fakeStudentRepo{students: []domain.Student{
		{ID: "s1", Name: "Ana", Status: domain.StudentStatusActive, MonthlyFee: 450, StaffHandle: "gabriella.souza"},
		{ID: "s2", Name: "Pedro", Status: domain.StudentStatusActive, MonthlyFee: 300, StaffHandle: "bruno.costa"},
		{ID: "s3", Name: "Lia", Status: domain.StudentStatusInactive, MonthlyFee: 500, StaffHandle: "bruno.costa"},
		{ID: "s4", Name: "Rui", Status: domain.StudentStatusActive, MonthlyFee: 0, StaffHandle: "bruno.costa"},
	}}
	billing := &fakeBillingRepo{}
	svc := newTestBillingService(students, billing)

	report, err := svc.GenerateMonthlyEntries(context.Background(), adminMember(), 2024, time.May)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if report.Period != "2024-05" {
		t.Errorf("period = %q, want 2024-05", report.Period)
	}
	if report.Created != 2 {
		t.Errorf("created = %d, want 2", report.Created)
	}
	if report.SkippedExisting != 0 {
		t.Errorf("skipped = %d, want 0", report.SkippedExisting)
	}
	if len(billing.entries) != 2 {
		t.Fatalf("stored entries = %d, want 2", len(billing.entries))
	}
	for _, entry := range billing.entries {
		if entry.Status != domain.BillingStatusPending {
			t.Errorf("entry %s status = %s, want PENDING", entry.StudentID, entry.Status)
		}
		if entry.Description != "Mensalidade 2024-05" {
			t.Errorf("entry %s description = %q", entry.StudentID, entry.Description)
		}
		if entry.Period != "2024-05" {
			t.Errorf("entry %s period = %q", entry.StudentID, entry.Period)
		}
	}
}

func TestGenerateMonthlyEntriesIdempotent(t *testing.T) {
	students := &fakeStudentRepo{students: []domain.Student{
		{ID: "s1", Name: "Ana", Status: domain.StudentStatusActive, MonthlyFee: 450},
		{ID: "s2", Name: "Pedro", Status: domain.StudentStatusActive, MonthlyFee: 300},
	}}
	billing := &fakeBillingRepo{}
	svc := newTestBillingService(students, billing)

	if _, err := svc.GenerateMonthlyEntries(context.Background(), adminMember(), 2024, time.May); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := svc.GenerateMonthlyEntries(context.Background(), adminMember(), 2024, time.May)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Created != 0 {
		t.Errorf("second run created = %d, want 0", report.Created)
	}
	if report.SkippedExisting != 2 {
		t.Errorf("second run skipped = %d, want 2", report.SkippedExisting)
	}
	if len(billing.entries) != 2 {
		t.Errorf("stored entries = %d, want 2 after rerun", len(billing.entries))
	}
}

func TestGenerateMonthlyEntriesPartialExisting(t *testing.T) {
	students := &fakeStudentRepo{students: []domain.Student{
		{ID: "s1", Name: "Ana", Status: domain.StudentStatusActive, MonthlyFee: 450},
		{ID: "s2", Name: "Pedro", Status: domain.StudentStatusActive, MonthlyFee: 300},
	}}
	billing := &fakeBillingRepo{entries: []domain.BillingEntry{
		{ID: "b1", StudentID: "s1", Period: "2024-05", Amount: 450, Status: domain.BillingStatusPaid},
	}}
	svc := newTestBillingService(students, billing)

	report, err := svc.GenerateMonthlyEntries(context.Background(), adminMember(), 2024, time.May)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if report.Created != 1 || report.SkippedExisting != 1 {
		t.Errorf("created/skipped = %d/%d, want 1/1", report.Created, report.SkippedExisting)
	}
}

func TestGenerateMonthlyEntriesEmptyRoster(t *testing.T) {
	students := &fakeStudentRepo{}
	billing := &fakeBillingRepo{}
	svc := newTestBillingService(students, billing)

	report, err := svc.GenerateMonthlyEntries(context.Background(), adminMember(), 2024, time.May)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !report.NothingToGenerate() {
		t.Errorf("expected empty report, got %+v", report)
	}
	if len(billing.entries) != 0 {
		t.Errorf("stored entries = %d, want 0", len(billing.entries))
	}
}

func TestGenerateMonthlyEntriesValidation(t *testing.T) {
	svc := newTestBillingService(&fakeStudentRepo{}, &fakeBillingRepo{})

	tests := []struct {
		name  string
		year  int
		month time.Month
	}{
		{"month zero", 2024, 0},
		{"month thirteen", 2024, 13},
		{"year too small", 1990, time.May},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.GenerateMonthlyEntries(context.Background(), adminMember(), tc.year, tc.month); err == nil {
				t.Errorf("expected validation error for year=%d month=%d", tc.year, tc.month)
			}
		})
	}
}

func TestGenerateMonthlyEntriesForbiddenForTeacher(t *testing.T) {
	svc := newTestBillingService(&fakeStudentRepo{}, &fakeBillingRepo{})

	_, err := svc.GenerateMonthlyEntries(context.Background(), teacherMember(), 2024, time.May)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if de := apperrors.ToDomainError(err); de.Code != "FORBIDDEN" {
		t.Errorf("error code = %s, want FORBIDDEN", de.Code)
	}
}

func TestUpdateEntryStatus(t *testing.T) {
	billing := &fakeBillingRepo{entries: []domain.BillingEntry{
		{ID: "b1", StudentID: "s1", Period: "2024-05", Amount: 450, Status: domain.BillingStatusPending},
	}}
	svc := newTestBillingService(&fakeStudentRepo{}, billing)

	entry, err := svc.UpdateEntryStatus(context.Background(), adminMember(), "b1", domain.BillingStatusPaid)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if entry.Status != domain.BillingStatusPaid {
		t.Errorf("status = %s, want PAID", entry.Status)
	}

	if _, err := svc.UpdateEntryStatus(context.Background(), adminMember(), "b1", domain.BillingStatus("SETTLED")); err == nil {
		t.Error("expected error for unknown status")
	}

	_, err = svc.UpdateEntryStatus(context.Background(), adminMember(), "missing", domain.BillingStatusPaid)
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPeriodToken(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2024, time.May, "2024-05"},
		{2024, time.December, "2024-12"},
		{2025, time.January, "2025-01"},
	}
	for _, tc := range tests {
		if got := domain.Period(tc.year, tc.month); got != tc.want {
			t.Errorf("Period(%d, %d) = %q, want %q", tc.year, tc.month, got, tc.want)
		}
	}
}
