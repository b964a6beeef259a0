package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/practice-kit/practice-service/internal/domain"
)

// IncomeRepository encapsulates misc income persistence.
type IncomeRepository interface {
	Create(ctx context.Context, income *domain.MiscIncome) error
	Update(ctx context.Context, income *domain.MiscIncome) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.MiscIncome, error)
	ListByPeriodPrefix(ctx context.Context, periodPrefix string) ([]domain.MiscIncome, error)
}

// ExpenseRepository encapsulates general expense persistence.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.GeneralExpense) error
	Update(ctx context.Context, expense *domain.GeneralExpense) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.GeneralExpense, error)
	ListByPeriodPrefix(ctx context.Context, periodPrefix string) ([]domain.GeneralExpense, error)
}

type incomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository instantiates the repository.
func NewIncomeRepository(pool *pgxpool.Pool) IncomeRepository {
	return &incomeRepository{pool: pool}
}

func (r *incomeRepository) Create(ctx context.Context, income *domain.MiscIncome) error {
	const query = `
        INSERT INTO misc_incomes (description, amount, period)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		income.Description,
		income.Amount,
		income.Period,
	).Scan(&income.ID, &income.CreatedAt, &income.UpdatedAt)
}

func (r *incomeRepository) Update(ctx context.Context, income *domain.MiscIncome) error {
	const query = `
        UPDATE misc_incomes SET description=$1, amount=$2, period=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, income.Description, income.Amount, income.Period, income.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *incomeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM misc_incomes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *incomeRepository) GetByID(ctx context.Context, id string) (*domain.MiscIncome, error) {
	const query = `
        SELECT id, description, amount, period, created_at, updated_at
        FROM misc_incomes WHERE id=$1`
	var income domain.MiscIncome
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&income.ID,
		&income.Description,
		&income.Amount,
		&income.Period,
		&income.CreatedAt,
		&income.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *incomeRepository) ListByPeriodPrefix(ctx context.Context, periodPrefix string) ([]domain.MiscIncome, error) {
	const query = `
        SELECT id, description, amount, period, created_at, updated_at
        FROM misc_incomes WHERE period LIKE $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, periodPrefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MiscIncome
	for rows.Next() {
		var income domain.MiscIncome
		if err := rows.Scan(
			&income.ID,
			&income.Description,
			&income.Amount,
			&income.Period,
			&income.CreatedAt,
			&income.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, income)
	}
	return result, rows.Err()
}

type expenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository instantiates the repository.
func NewExpenseRepository(pool *pgxpool.Pool) ExpenseRepository {
	return &expenseRepository{pool: pool}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.GeneralExpense) error {
	const query = `
        INSERT INTO general_expenses (description, amount, period, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		expense.Description,
		expense.Amount,
		expense.Period,
		expense.Status,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.GeneralExpense) error {
	const query = `
        UPDATE general_expenses SET description=$1, amount=$2, period=$3, status=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		expense.Description,
		expense.Amount,
		expense.Period,
		expense.Status,
		expense.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM general_expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*domain.GeneralExpense, error) {
	const query = `
        SELECT id, description, amount, period, status, created_at, updated_at
        FROM general_expenses WHERE id=$1`
	var expense domain.GeneralExpense
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&expense.ID,
		&expense.Description,
		&expense.Amount,
		&expense.Period,
		&expense.Status,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) ListByPeriodPrefix(ctx context.Context, periodPrefix string) ([]domain.GeneralExpense, error) {
	const query = `
        SELECT id, description, amount, period, status, created_at, updated_at
        FROM general_expenses WHERE period LIKE $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, periodPrefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.GeneralExpense
	for rows.Next() {
		var expense domain.GeneralExpense
		if err := rows.Scan(
			&expense.ID,
			&expense.Description,
			&expense.Amount,
			&expense.Period,
			&expense.Status,
			&expense.CreatedAt,
			&expense.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, expense)
	}
	return result, rows.Err()
}
