package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/practice-kit/practice-service/internal/access"
	"github.com/practice-kit/practice-service/internal/config"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/events"
	"github.com/practice-kit/practice-service/internal/repository"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

const summaryCacheVersionKey = "finance:summary:version"

// FinanceService owns misc income/expense records and period reporting.
// Period summaries are cached in Redis under a version counter that is
// bumped whenever a financial collection changes.
type FinanceService struct {
	billing    repository.BillingRepository
	incomes    repository.IncomeRepository
	expenses   repository.ExpenseRepository
	students   repository.StudentRepository
	staff      repository.StaffRepository
	classes    repository.EventRepository
	dispatcher events.Dispatcher
	cache      *redis.Client
	cfg        config.BillingConfig
}

// FinanceDependencies bundles requirements for the finance service.
type FinanceDependencies struct {
	BillingRepo repository.BillingRepository
	IncomeRepo  repository.IncomeRepository
	ExpenseRepo repository.ExpenseRepository
	StudentRepo repository.StudentRepository
	StaffRepo   repository.StaffRepository
	EventRepo   repository.EventRepository
	Dispatcher  events.Dispatcher
	Cache       *redis.Client
}

// NewFinanceService constructs the service.
func NewFinanceService(cfg config.BillingConfig, deps FinanceDependencies) *FinanceService {
	return &FinanceService{
		billing:    deps.BillingRepo,
		incomes:    deps.IncomeRepo,
		expenses:   deps.ExpenseRepo,
		students:   deps.StudentRepo,
		staff:      deps.StaffRepo,
		classes:    deps.EventRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		cfg:        cfg,
	}
}

// GetSummary returns the cached or freshly computed summary for a period.
func (s *FinanceService) GetSummary(ctx context.Context, staff *domain.StaffMember, period string) (*Summary, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial reports are restricted to administrators")
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	cacheKey := s.summaryCacheKey(ctx, period)
	if s.cache != nil && cacheKey != "" {
		if raw, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached Summary
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	entries, err := s.billing.List(ctx, repository.BillingFilter{PeriodPrefix: &period})
	if err != nil {
		return nil, fmt.Errorf("load billing entries: %w", err)
	}
	incomes, err := s.incomes.ListByPeriodPrefix(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("load misc incomes: %w", err)
	}
	expenses, err := s.expenses.ListByPeriodPrefix(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	summary := Summarize(entries, incomes, expenses, period)

	if s.cache != nil && cacheKey != "" {
		if raw, err := json.Marshal(summary); err == nil {
			_ = s.cache.Set(ctx, cacheKey, raw, s.cfg.SummaryCacheTTL).Err()
		}
	}
	return &summary, nil
}

// GetRevenueBreakdown returns per-service revenue for the period.
func (s *FinanceService) GetRevenueBreakdown(ctx context.Context, staff *domain.StaffMember, period string) ([]ServiceRevenue, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial reports are restricted to administrators")
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	entries, err := s.billing.List(ctx, repository.BillingFilter{PeriodPrefix: &period})
	if err != nil {
		return nil, err
	}
	students, err := s.students.List(ctx, repository.StudentFilter{})
	if err != nil {
		return nil, err
	}
	return RevenueByService(entries, students, period), nil
}

// GetTeamPerformance returns completed sessions and estimated earnings per
// staff member for the period.
func (s *FinanceService) GetTeamPerformance(ctx context.Context, staff *domain.StaffMember, period string) ([]StaffPerformance, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial reports are restricted to administrators")
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	members, err := s.staff.List(ctx, repository.StaffFilter{})
	if err != nil {
		return nil, err
	}
	classEvents, err := s.classes.List(ctx, repository.EventFilter{})
	if err != nil {
		return nil, err
	}
	return TeamPerformance(members, classEvents, period), nil
}

// CreateIncome records a misc income entry.
func (s *FinanceService) CreateIncome(ctx context.Context, staff *domain.StaffMember, description string, amount float64, period string) (*domain.MiscIncome, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial records are restricted to administrators")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	income := &domain.MiscIncome{Description: strings.TrimSpace(description), Amount: amount, Period: period}
	if err := s.incomes.Create(ctx, income); err != nil {
		return nil, err
	}
	publishRecordChange(ctx, s.dispatcher, staff.Handle, events.CollectionIncomes, events.OpCreated, income.ID, "")
	return income, nil
}

// UpdateIncome edits a misc income entry.
func (s *FinanceService) UpdateIncome(ctx context.Context, staff *domain.StaffMember, income *domain.MiscIncome) (*domain.MiscIncome, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial records are restricted to administrators")
	}
	if err := validatePeriod(income.Period); err != nil {
		return nil, err
	}
	if err := s.incomes.Update(ctx, income); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("misc income", map[string]any{"id": income.ID})
		}
		return nil, err
	}
	publishRecordChange(ctx, s.dispatcher, staff.Handle, events.CollectionIncomes, events.OpUpdated, income.ID, "")
	return income, nil
}

// DeleteIncome removes a misc income entry.
func (s *FinanceService) DeleteIncome(ctx context.Context, staff *domain.StaffMember, id string) error {
	if !access.CanViewFinancials(staff) {
		return apperrors.NewForbidden("financial records are restricted to administrators")
	}
	if err := s.incomes.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("misc income", map[string]any{"id": id})
		}
		return err
	}
	publishRecordChange(ctx, s.dispatcher, staff.Handle, events.CollectionIncomes, events.OpDeleted, id, "")
	return nil
}

// ListIncomes returns misc incomes for a period prefix.
func (s *FinanceService) ListIncomes(ctx context.Context, staff *domain.StaffMember, periodPrefix string) ([]domain.MiscIncome, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial records are restricted to administrators")
	}
	return s.incomes.ListByPeriodPrefix(ctx, periodPrefix)
}

// CreateExpense records a general expense.
func (s *FinanceService) CreateExpense(ctx context.Context, staff *domain.StaffMember, description string, amount float64, period string, status domain.ExpenseStatus) (*domain.GeneralExpense, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial records are restricted to administrators")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if status == "" {
		status = domain.ExpenseStatusPending
	}

	expense := &domain.GeneralExpense{
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Period:      period,
		Status:      status,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	publishRecordChange(ctx, s.dispatcher, staff.Handle, events.CollectionExpenses, events.OpCreated, expense.ID, "")
	return expense, nil
}

// UpdateExpense edits a general expense.
func (s *FinanceService) UpdateExpense(ctx context.Context, staff *domain.StaffMember, expense *domain.GeneralExpense) (*domain.GeneralExpense, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial records are restricted to administrators")
	}
	if err := validatePeriod(expense.Period); err != nil {
		return nil, err
	}
	if err := s.expenses.Update(ctx, expense); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("general expense", map[string]any{"id": expense.ID})
		}
		return nil, err
	}
	publishRecordChange(ctx, s.dispatcher, staff.Handle, events.CollectionExpenses, events.OpUpdated, expense.ID, "")
	return expense, nil
}

// DeleteExpense removes a general expense.
func (s *FinanceService) DeleteExpense(ctx context.Context, staff *domain.StaffMember, id string) error {
	if !access.CanViewFinancials(staff) {
		return apperrors.NewForbidden("financial records are restricted to administrators")
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("general expense", map[string]any{"id": id})
		}
		return err
	}
	publishRecordChange(ctx, s.dispatcher, staff.Handle, events.CollectionExpenses, events.OpDeleted, id, "")
	return nil
}

// ListExpenses returns general expenses for a period prefix.
func (s *FinanceService) ListExpenses(ctx context.Context, staff *domain.StaffMember, periodPrefix string) ([]domain.GeneralExpense, error) {
	if !access.CanViewFinancials(staff) {
		return nil, apperrors.NewForbidden("financial records are restricted to administrators")
	}
	return s.expenses.ListByPeriodPrefix(ctx, periodPrefix)
}

// BumpCacheVersion invalidates all cached summaries; called when any
// financial collection changes.
func (s *FinanceService) BumpCacheVersion(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Incr(ctx, summaryCacheVersionKey).Err()
}

func (s *FinanceService) summaryCacheKey(ctx context.Context, period string) string {
	if s.cache == nil {
		return ""
	}
	version, err := s.cache.Get(ctx, summaryCacheVersionKey).Result()
	if err != nil {
		version = "0"
	}
	return fmt.Sprintf("finance:summary:%s:%s", version, period)
}

func validatePeriod(period string) error {
	if len(period) != 7 || period[4] != '-' {
		return apperrors.NewValidationError("period must be YYYY-MM", map[string]any{"period": period})
	}
	return nil
}
