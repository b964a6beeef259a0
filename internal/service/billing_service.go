package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/practice-kit/practice-service/internal/access"
	"github.com/practice-kit/practice-service/internal/config"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/events"
	"github.com/practice-kit/practice-service/internal/repository"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

// BillingService owns monthly billing generation and entry upkeep.
type BillingService struct {
	billing    repository.BillingRepository
	students   repository.StudentRepository
	dispatcher events.Dispatcher
	cfg        config.BillingConfig
}

// BillingDependencies bundles requirements for the billing service.
type BillingDependencies struct {
	BillingRepo repository.BillingRepository
	StudentRepo repository.StudentRepository
	Dispatcher  events.Dispatcher
}

// NewBillingService constructs the service.
func NewBillingService(cfg config.BillingConfig, deps BillingDependencies) *BillingService {
	if cfg.DescriptionPrefix == "" {
		cfg.DescriptionPrefix = "Mensalidade"
	}
	return &BillingService{
		billing:    deps.BillingRepo,
		students:   deps.StudentRepo,
		dispatcher: deps.Dispatcher,
		cfg:        cfg,
	}
}

// GenerationReport summarizes one generation run.
type GenerationReport struct {
	Period           string `json:"period"`
	EligibleStudents int    `json:"eligible_students"`
	Created          int    `json:"created"`
	SkippedExisting  int    `json:"skipped_existing"`
}

// NothingToGenerate reports whether the run found no eligible students.
func (r *GenerationReport) NothingToGenerate() bool {
	return r.EligibleStudents == 0
}

// GenerateMonthlyEntries creates the month's pending charges for every
// active student with a positive monthly fee. The run is idempotent: a
// student already holding an entry for the period is skipped, and all new
// entries are committed in one transaction so a failure never leaves the
// roster half billed. The existence check runs against storage rather than
// any in-memory snapshot; two generations racing in the same instant can
// still both pass it, which is an accepted limitation.
func (s *BillingService) GenerateMonthlyEntries(ctx context.Context, staff *domain.StaffMember, year int, month time.Month) (*GenerationReport, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("billing is restricted to administrators")
	}
	if year < 2000 || year > 2200 {
		return nil, apperrors.NewValidationError("year out of range", map[string]any{"year": year})
	}
	if month < time.January || month > time.December {
		return nil, apperrors.NewValidationError("invalid month", map[string]any{"month": int(month)})
	}

	period := domain.Period(year, month)
	report := &GenerationReport{Period: period}

	activeStatus := domain.StudentStatusActive
	roster, err := s.students.List(ctx, repository.StudentFilter{Status: &activeStatus})
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	toCreate := make([]domain.BillingEntry, 0, len(roster))
	for _, student := range roster {
		if student.MonthlyFee <= 0 {
			continue
		}
		report.EligibleStudents++

		exists, err := s.billing.ExistsForStudentPeriod(ctx, student.ID, period)
		if err != nil {
			return nil, fmt.Errorf("check existing entry for %s: %w", student.ID, err)
		}
		if exists {
			report.SkippedExisting++
			continue
		}

		toCreate = append(toCreate, domain.BillingEntry{
			ID:          uuid.NewString(),
			StudentID:   student.ID,
			Description: fmt.Sprintf("%s %s", s.cfg.DescriptionPrefix, period),
			Amount:      student.MonthlyFee,
			Period:      period,
			Status:      domain.BillingStatusPending,
		})
	}

	if report.NothingToGenerate() {
		return report, nil
	}

	if err := s.billing.CreateBatch(ctx, toCreate); err != nil {
		return nil, fmt.Errorf("commit billing batch: %w", err)
	}
	report.Created = len(toCreate)

	for _, entry := range toCreate {
		publishRecordChange(ctx, s.dispatcher, staff.Handle, events.CollectionBilling, events.OpCreated, entry.ID, "")
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        events.EventBillingGenerated,
		ActorHandle: staff.Handle,
		Payload: events.BillingGeneratedPayload{
			Period:  period,
			Created: report.Created,
			Skipped: report.SkippedExisting,
		},
	})
	return report, nil
}

// ListEntries returns billing entries for a period prefix.
func (s *BillingService) ListEntries(ctx context.Context, staff *domain.StaffMember, periodPrefix string) ([]domain.BillingEntry, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("billing is restricted to administrators")
	}
	filter := repository.BillingFilter{}
	if periodPrefix != "" {
		filter.PeriodPrefix = &periodPrefix
	}
	return s.billing.List(ctx, filter)
}

// UpdateEntryStatus moves an entry between paid/pending/overdue.
func (s *BillingService) UpdateEntryStatus(ctx context.Context, staff *domain.StaffMember, entryID string, status domain.BillingStatus) (*domain.BillingEntry, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("billing is restricted to administrators")
	}
	switch status {
	case domain.BillingStatusPaid, domain.BillingStatusPending, domain.BillingStatusOverdue:
	default:
		return nil, apperrors.NewValidationError("invalid billing status", map[string]any{"status": status})
	}

	entry, err := s.billing.GetByID(ctx, entryID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("billing entry", map[string]any{"id": entryID})
		}
		return nil, err
	}
	entry.Status = status
	if err := s.billing.Update(ctx, entry); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("billing entry", map[string]any{"id": entryID})
		}
		return nil, err
	}
	publishRecordChange(ctx, s.dispatcher, staff.Handle, events.CollectionBilling, events.OpUpdated, entry.ID, "")
	return entry, nil
}
