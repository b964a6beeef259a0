package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/practice-kit/practice-service/internal/access"
	"github.com/practice-kit/practice-service/internal/auth"
	"github.com/practice-kit/practice-service/internal/config"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/events"
	"github.com/practice-kit/practice-service/internal/repository"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

// StaffService covers staff account administration. Creation and role
// changes are admin-only; every member may update their own profile.
type StaffService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// StaffDependencies wires repositories into the service.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
}

// NewStaffService builds the service.
func NewStaffService(cfg config.Config, deps StaffDependencies) *StaffService {
	return &StaffService{
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateStaffInput carries the fields of a new staff account.
type CreateStaffInput struct {
	Handle   string
	Name     string
	Email    string
	Password string
	Role     domain.StaffRole
	Rates    []domain.ServiceRate
}

// CreateStaff registers a new staff member with login credentials.
func (s *StaffService) CreateStaff(ctx context.Context, actor *domain.StaffMember, input CreateStaffInput) (*domain.StaffMember, error) {
	if !access.CanManageStaff(actor) {
		return nil, apperrors.NewForbidden("staff management requires admin role")
	}
	if err := validateStaffInput(input.Handle, input.Name, input.Email, input.Role); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, apperrors.NewValidationError("password is required", nil)
	}

	if err := s.ensureHandleFree(ctx, input.Handle, ""); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		Handle:       domain.NormalizeHandle(input.Handle),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
		Rates:        input.Rates,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionStaff, events.OpCreated, staff.ID, staff.Handle)
	return staff, nil
}

// UpdateStaffInput carries mutable staff fields. Nil pointers leave the
// current value untouched.
type UpdateStaffInput struct {
	Name   *string
	Email  *string
	Role   *domain.StaffRole
	Active *bool
	Rates  *[]domain.ServiceRate
}

// UpdateStaff edits a staff record. Admins may edit anyone; other members
// may only change their own name, email and rates.
func (s *StaffService) UpdateStaff(ctx context.Context, actor *domain.StaffMember, id string, input UpdateStaffInput) (*domain.StaffMember, error) {
	staff, err := s.getStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	selfEdit := actor.ID == staff.ID
	if !access.CanManageStaff(actor) && !selfEdit {
		return nil, apperrors.NewForbidden("cannot edit other staff members")
	}
	if (input.Role != nil || input.Active != nil) && !access.CanManageStaff(actor) {
		return nil, apperrors.NewForbidden("role and activation changes require admin role")
	}

	if input.Name != nil {
		staff.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if err := s.ensureEmailFree(ctx, email, staff.ID); err != nil {
			return nil, err
		}
		staff.Email = email
	}
	if input.Role != nil {
		if !domain.ValidStaffRole(*input.Role) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		staff.Role = *input.Role
	}
	if input.Active != nil {
		staff.Active = *input.Active
	}
	if input.Rates != nil {
		staff.Rates = *input.Rates
	}
	if err := validateStaffInput(staff.Handle, staff.Name, staff.Email, staff.Role); err != nil {
		return nil, err
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"id": id})
		}
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionStaff, events.OpUpdated, staff.ID, staff.Handle)
	return staff, nil
}

// DeactivateStaff disables login for the member without deleting history.
func (s *StaffService) DeactivateStaff(ctx context.Context, actor *domain.StaffMember, id string) error {
	if !access.CanManageStaff(actor) {
		return apperrors.NewForbidden("staff management requires admin role")
	}
	if actor.ID == id {
		return apperrors.NewValidationError("cannot deactivate own account", nil)
	}

	staff, err := s.getStaff(ctx, id)
	if err != nil {
		return err
	}
	staff.Active = false
	if err := s.staff.Update(ctx, staff); err != nil {
		return err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionStaff, events.OpUpdated, staff.ID, staff.Handle)
	return nil
}

// GetStaff returns one staff member. Non-admins may only read themselves.
func (s *StaffService) GetStaff(ctx context.Context, actor *domain.StaffMember, id string) (*domain.StaffMember, error) {
	if !access.CanManageStaff(actor) && actor.ID != id {
		return nil, apperrors.NewForbidden("cannot read other staff members")
	}
	return s.getStaff(ctx, id)
}

// ListStaff returns the staff roster. The roster is visible to every
// member so schedules and notices can reference colleagues by handle.
func (s *StaffService) ListStaff(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	return s.staff.List(ctx, filter)
}

func (s *StaffService) getStaff(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"id": id})
		}
		return nil, err
	}
	return staff, nil
}

func (s *StaffService) ensureHandleFree(ctx context.Context, handle, excludeID string) error {
	existing, err := s.staff.GetByHandle(ctx, handle)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperrors.NewConflict("handle already in use", map[string]any{"handle": handle})
	}
	return nil
}

func (s *StaffService) ensureEmailFree(ctx context.Context, email, excludeID string) error {
	existing, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperrors.NewConflict("email already in use", map[string]any{"email": email})
	}
	return nil
}

func validateStaffInput(handle, name, email string, role domain.StaffRole) error {
	details := map[string]any{}
	if strings.TrimSpace(handle) == "" {
		details["handle"] = "required"
	}
	if strings.TrimSpace(name) == "" {
		details["name"] = "required"
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		details["email"] = "must be a valid address"
	}
	if !domain.ValidStaffRole(role) {
		details["role"] = "must be ADMIN or TEACHER"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid staff data", details)
	}
	return nil
}
