package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/practice-kit/practice-service/internal/domain"
)

// BillingFilter captures billing entry listing parameters. PeriodPrefix
// matches entries whose period token starts with the given value.
type BillingFilter struct {
	StudentID    *string
	PeriodPrefix *string
	Status       *domain.BillingStatus
	Limit        int
	Offset       int
}

// BillingRepository encapsulates billing entry persistence.
type BillingRepository interface {
	Create(ctx context.Context, entry *domain.BillingEntry) error
	Update(ctx context.Context, entry *domain.BillingEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.BillingEntry, error)
	List(ctx context.Context, filter BillingFilter) ([]domain.BillingEntry, error)
	ExistsForStudentPeriod(ctx context.Context, studentID, period string) (bool, error)
	CreateBatch(ctx context.Context, entries []domain.BillingEntry) error
}

type billingRepository struct {
	pool *pgxpool.Pool
}

// NewBillingRepository instantiates the repository.
func NewBillingRepository(pool *pgxpool.Pool) BillingRepository {
	return &billingRepository{pool: pool}
}

const billingColumns = `id, student_id, description, amount, period, status, created_at, updated_at`

func (r *billingRepository) Create(ctx context.Context, entry *domain.BillingEntry) error {
	const query = `
        INSERT INTO billing_entries (student_id, description, amount, period, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		entry.StudentID,
		entry.Description,
		entry.Amount,
		entry.Period,
		entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *billingRepository) Update(ctx context.Context, entry *domain.BillingEntry) error {
	const query = `
        UPDATE billing_entries SET description=$1, amount=$2, period=$3, status=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		entry.Description,
		entry.Amount,
		entry.Period,
		entry.Status,
		entry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *billingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM billing_entries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *billingRepository) GetByID(ctx context.Context, id string) (*domain.BillingEntry, error) {
	query := `SELECT ` + billingColumns + ` FROM billing_entries WHERE id=$1`
	var entry domain.BillingEntry
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.StudentID,
		&entry.Description,
		&entry.Amount,
		&entry.Period,
		&entry.Status,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *billingRepository) List(ctx context.Context, filter BillingFilter) ([]domain.BillingEntry, error) {
	query := `SELECT ` + billingColumns + ` FROM billing_entries`
	args := []any{}
	clauses := []string{}

	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		clauses = append(clauses, fmt.Sprintf("student_id=$%d", len(args)))
	}
	if filter.PeriodPrefix != nil {
		args = append(args, *filter.PeriodPrefix+"%")
		clauses = append(clauses, fmt.Sprintf("period LIKE $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY period DESC, created_at ASC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBillingEntries(rows)
}

// ExistsForStudentPeriod checks authoritative storage state for an existing
// entry; the billing generator relies on this as its duplicate guard.
func (r *billingRepository) ExistsForStudentPeriod(ctx context.Context, studentID, period string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM billing_entries WHERE student_id=$1 AND period=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, studentID, period).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateBatch inserts all entries inside one transaction; either every entry
// is committed or none are.
func (r *billingRepository) CreateBatch(ctx context.Context, entries []domain.BillingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO billing_entries (id, student_id, description, amount, period, status)
        VALUES ($1,$2,$3,$4,$5,$6)`
	for i := range entries {
		if _, err := tx.Exec(ctx, query,
			entries[i].ID,
			entries[i].StudentID,
			entries[i].Description,
			entries[i].Amount,
			entries[i].Period,
			entries[i].Status,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func scanBillingEntries(rows pgx.Rows) ([]domain.BillingEntry, error) {
	var result []domain.BillingEntry
	for rows.Next() {
		var entry domain.BillingEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.StudentID,
			&entry.Description,
			&entry.Amount,
			&entry.Period,
			&entry.Status,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
