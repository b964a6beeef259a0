package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/practice-kit/practice-service/internal/domain"
)

// EventFilter captures calendar listing parameters.
type EventFilter struct {
	StaffHandle *string
	StudentID   *string
	Status      *domain.EventStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       int
	Offset      int
}

// EventRepository encapsulates class event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.ClassEvent) error
	Update(ctx context.Context, event *domain.ClassEvent) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ClassEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.ClassEvent, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates the repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, student_id, staff_handle, title, event_date, start_time, status, service, observations, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.ClassEvent) error {
	const query = `
        INSERT INTO class_events (student_id, staff_handle, title, event_date, start_time, status, service, observations)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.StudentID,
		event.StaffHandle,
		event.Title,
		event.Date,
		event.StartTime,
		event.Status,
		event.Service,
		event.Observations,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.ClassEvent) error {
	const query = `
        UPDATE class_events SET student_id=$1, staff_handle=$2, title=$3, event_date=$4, start_time=$5,
            status=$6, service=$7, observations=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		event.StudentID,
		event.StaffHandle,
		event.Title,
		event.Date,
		event.StartTime,
		event.Status,
		event.Service,
		event.Observations,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM class_events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.ClassEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM class_events WHERE id=$1`
	var event domain.ClassEvent
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.StudentID,
		&event.StaffHandle,
		&event.Title,
		&event.Date,
		&event.StartTime,
		&event.Status,
		&event.Service,
		&event.Observations,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]domain.ClassEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM class_events`
	args := []any{}
	clauses := []string{}

	if filter.StaffHandle != nil {
		args = append(args, *filter.StaffHandle)
		clauses = append(clauses, fmt.Sprintf("staff_handle=$%d", len(args)))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		clauses = append(clauses, fmt.Sprintf("student_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		clauses = append(clauses, fmt.Sprintf("event_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		clauses = append(clauses, fmt.Sprintf("event_date <= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY event_date ASC, start_time ASC"
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

	var result []domain.ClassEvent
	for rows.Next() {
		var event domain.ClassEvent
		if err := rows.Scan(
			&event.ID,
			&event.StudentID,
			&event.StaffHandle,
			&event.Title,
			&event.Date,
			&event.StartTime,
			&event.Status,
			&event.Service,
			&event.Observations,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
