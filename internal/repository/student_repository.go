package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/practice-kit/practice-service/internal/domain"
)

// StudentFilter captures listing parameters.
type StudentFilter struct {
	StaffHandle *string
	Status      *domain.StudentStatus
	Limit       int
	Offset      int
}

// StudentRepository encapsulates student persistence, including the
// append-only progress log.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]domain.Student, error)
	AppendProgressEntry(ctx context.Context, entry *domain.ProgressEntry) error
	ListProgressEntries(ctx context.Context, studentID string) ([]domain.ProgressEntry, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository instantiates the repository.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

const studentColumns = `id, name, status, birth_date, parent_name, parent_contact, address, service, staff_handle, monthly_fee, observations, created_at, updated_at`

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (name, status, birth_date, parent_name, parent_contact, address, service, staff_handle, monthly_fee, observations)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		student.Name,
		student.Status,
		student.BirthDate,
		student.ParentName,
		student.ParentContact,
		student.Address,
		student.Service,
		student.StaffHandle,
		student.MonthlyFee,
		student.Observations,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	const query = `
        UPDATE students SET name=$1, status=$2, birth_date=$3, parent_name=$4, parent_contact=$5,
            address=$6, service=$7, staff_handle=$8, monthly_fee=$9, observations=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		student.Name,
		student.Status,
		student.BirthDate,
		student.ParentName,
		student.ParentContact,
		student.Address,
		student.Service,
		student.StaffHandle,
		student.MonthlyFee,
		student.Observations,
		student.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id=$1`
	var student domain.Student
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Status,
		&student.BirthDate,
		&student.ParentName,
		&student.ParentContact,
		&student.Address,
		&student.Service,
		&student.StaffHandle,
		&student.MonthlyFee,
		&student.Observations,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	args := []any{}
	clauses := []string{}

	if filter.StaffHandle != nil {
		args = append(args, *filter.StaffHandle)
		clauses = append(clauses, fmt.Sprintf("staff_handle=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY name ASC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
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

	var result []domain.Student
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Status,
			&student.BirthDate,
			&student.ParentName,
			&student.ParentContact,
			&student.Address,
			&student.Service,
			&student.StaffHandle,
			&student.MonthlyFee,
			&student.Observations,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, student)
	}
	return result, rows.Err()
}

func (r *studentRepository) AppendProgressEntry(ctx context.Context, entry *domain.ProgressEntry) error {
	const query = `
        INSERT INTO progress_entries (student_id, author, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.StudentID,
		entry.Author,
		entry.Content,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *studentRepository) ListProgressEntries(ctx context.Context, studentID string) ([]domain.ProgressEntry, error) {
	const query = `
        SELECT id, student_id, author, content, created_at
        FROM progress_entries WHERE student_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProgressEntry
	for rows.Next() {
		var entry domain.ProgressEntry
		if err := rows.Scan(&entry.ID, &entry.StudentID, &entry.Author, &entry.Content, &entry.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
