package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/practice-kit/practice-service/internal/domain"
)

// NoticeRepository encapsulates notice board persistence. Reactions and
// comments are stored as nested documents on the notice row.
type NoticeRepository interface {
	Create(ctx context.Context, notice *domain.Notice) error
	Update(ctx context.Context, notice *domain.Notice) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Notice, error)
	List(ctx context.Context) ([]domain.Notice, error)
}

type noticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository instantiates the repository.
func NewNoticeRepository(pool *pgxpool.Pool) NoticeRepository {
	return &noticeRepository{pool: pool}
}

const noticeColumns = `id, author, content, everyone, recipients, reactions, comments, created_at, updated_at`

func (r *noticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	const query = `
        INSERT INTO notices (author, content, everyone, recipients, reactions, comments)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		notice.Author,
		notice.Content,
		notice.Audience.Everyone,
		notice.Audience.Handles,
		notice.Reactions,
		notice.Comments,
	).Scan(&notice.ID, &notice.CreatedAt, &notice.UpdatedAt)
}

func (r *noticeRepository) Update(ctx context.Context, notice *domain.Notice) error {
	const query = `
        UPDATE notices SET content=$1, everyone=$2, recipients=$3, reactions=$4, comments=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		notice.Content,
		notice.Audience.Everyone,
		notice.Audience.Handles,
		notice.Reactions,
		notice.Comments,
		notice.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *noticeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *noticeRepository) GetByID(ctx context.Context, id string) (*domain.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE id=$1`
	var notice domain.Notice
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&notice.ID,
		&notice.Author,
		&notice.Content,
		&notice.Audience.Everyone,
		&notice.Audience.Handles,
		&notice.Reactions,
		&notice.Comments,
		&notice.CreatedAt,
		&notice.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepository) List(ctx context.Context) ([]domain.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notice
	for rows.Next() {
		var notice domain.Notice
		if err := rows.Scan(
			&notice.ID,
			&notice.Author,
			&notice.Content,
			&notice.Audience.Everyone,
			&notice.Audience.Handles,
			&notice.Reactions,
			&notice.Comments,
			&notice.CreatedAt,
			&notice.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, notice)
	}
	return result, rows.Err()
}
