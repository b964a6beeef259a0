package service

import (
	"context"
	"testing"

	"github.com/practice-kit/practice-service/internal/config"
	"github.com/practice-kit/practice-service/internal/domain"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

func newTestStaffService(staff *fakeStaffRepo) *StaffService {
	cfg := config.Config{}
	cfg.Auth.BcryptCost = 4
	return NewStaffService(cfg, StaffDependencies{StaffRepo: staff})
}

func TestCreateStaff(t *testing.T) {
	repo := rosterRepo()
	svc := newTestStaffService(repo)

	staff, err := svc.CreateStaff(context.Background(), adminMember(), CreateStaffInput{
		Handle:   "Carla.Lima",
		Name:     "Carla Lima",
		Email:    "carla@practice.test",
		Password: "s3cret",
		Role:     domain.StaffRoleTeacher,
		Rates:    []domain.ServiceRate{{Service: "piano", HourlyRate: 55}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if staff.Handle != "carla.lima" {
		t.Errorf("handle = %q, want normalized", staff.Handle)
	}
	if !staff.Active {
		t.Error("new staff must start active")
	}
	if staff.PasswordHash == "" || staff.PasswordHash == "s3cret" {
		t.Error("password must be stored hashed")
	}
}

func TestCreateStaffRequiresAdmin(t *testing.T) {
	svc := newTestStaffService(rosterRepo())

	_, err := svc.CreateStaff(context.Background(), teacherMember(), CreateStaffInput{
		Handle: "x", Name: "X", Email: "x@practice.test", Password: "pw", Role: domain.StaffRoleTeacher,
	})
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}
}

func TestCreateStaffValidation(t *testing.T) {
	svc := newTestStaffService(rosterRepo())

	tests := []struct {
		name  string
		input CreateStaffInput
	}{
		{"missing password", CreateStaffInput{Handle: "x", Name: "X", Email: "x@p.test", Role: domain.StaffRoleTeacher}},
		{"missing email", CreateStaffInput{Handle: "x", Name: "X", Password: "pw", Role: domain.StaffRoleTeacher}},
		{"bad role", CreateStaffInput{Handle: "x", Name: "X", Email: "x@p.test", Password: "pw", Role: "OWNER"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateStaff(context.Background(), adminMember(), tc.input); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateStaffDuplicateHandle(t *testing.T) {
	svc := newTestStaffService(rosterRepo())

	_, err := svc.CreateStaff(context.Background(), adminMember(), CreateStaffInput{
		Handle: "bruno.costa", Name: "Impostor", Email: "other@practice.test", Password: "pw", Role: domain.StaffRoleTeacher,
	})
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "CONFLICT" {
		t.Errorf("expected CONFLICT, got %v", err)
	}
}

func TestUpdateStaffSelfEditLimits(t *testing.T) {
	repo := rosterRepo()
	svc := newTestStaffService(repo)

	name := "Bruno C."
	updated, err := svc.UpdateStaff(context.Background(), teacherMember(), "staff-teacher", UpdateStaffInput{Name: &name})
	if err != nil {
		t.Fatalf("self edit: %v", err)
	}
	if updated.Name != "Bruno C." {
		t.Errorf("name = %q", updated.Name)
	}

	adminRole := domain.StaffRoleAdmin
	_, err = svc.UpdateStaff(context.Background(), teacherMember(), "staff-teacher", UpdateStaffInput{Role: &adminRole})
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN for self role change, got %v", err)
	}

	_, err = svc.UpdateStaff(context.Background(), teacherMember(), "staff-admin", UpdateStaffInput{Name: &name})
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN editing another member, got %v", err)
	}
}

func TestDeactivateStaff(t *testing.T) {
	repo := rosterRepo()
	svc := newTestStaffService(repo)

	if err := svc.DeactivateStaff(context.Background(), adminMember(), "staff-admin"); err == nil {
		t.Error("expected error deactivating own account")
	}

	if err := svc.DeactivateStaff(context.Background(), adminMember(), "staff-teacher"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	member, err := repo.GetByID(context.Background(), "staff-teacher")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if member.Active {
		t.Error("member still active after deactivation")
	}
}
