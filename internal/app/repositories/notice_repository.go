package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okaya/campusgate/internal/app/models"
	"github.com/okaya/campusgate/internal/pkg/apperrors"
)

// NoticeRepository handles database operations for notices
type NoticeRepository struct {
	db *pgxpool.Pool
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Create publishes a new notice
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	query := `
		INSERT INTO notices (title, description, audience, published_by, published_at, expires_at)
		VALUES ($1, $2, $3, $4, NOW(), $5)
		RETURNING id, published_at
	`

	err := r.db.QueryRow(ctx, query,
		notice.Title,
		notice.Description,
		notice.Audience,
		notice.PublishedBy,
		notice.ExpiresAt,
	).Scan(&notice.ID, &notice.PublishedAt)

	if err != nil {
		return fmt.Errorf("error creating notice: %w", err)
	}

	return nil
}

// GetByID retrieves a notice by its ID
func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	query := `
		SELECT id, title, description, audience, published_by, published_at, expires_at
		FROM notices
		WHERE id = $1
	`

	var notice models.Notice
	err := r.db.QueryRow(ctx, query, id).Scan(
		&notice.ID,
		&notice.Title,
		&notice.Description,
		&notice.Audience,
		&notice.PublishedBy,
		&notice.PublishedAt,
		&notice.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, err
	}

	return &notice, nil
}

// List returns unexpired notices visible to the given audience, newest
// first. ALL notices are visible to every audience.
func (r *NoticeRepository) List(ctx context.Context, audience models.NoticeAudience) ([]*models.Notice, error) {
	query := `
		SELECT id, title, description, audience, published_by, published_at, expires_at
		FROM notices
		WHERE (audience = $1 OR audience = $2)
		  AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY published_at DESC
	`

	rows, err := r.db.Query(ctx, query, audience, models.AudienceAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []*models.Notice
	for rows.Next() {
		var notice models.Notice
		if err := rows.Scan(
			&notice.ID,
			&notice.Title,
			&notice.Description,
			&notice.Audience,
			&notice.PublishedBy,
			&notice.PublishedAt,
			&notice.ExpiresAt,
		); err != nil {
			return nil, err
		}
		notices = append(notices, &notice)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notices, nil
}

// ListAll returns every unexpired notice regardless of audience
func (r *NoticeRepository) ListAll(ctx context.Context) ([]*models.Notice, error) {
	query := `
		SELECT id, title, description, audience, published_by, published_at, expires_at
		FROM notices
		WHERE expires_at IS NULL OR expires_at > NOW()
		ORDER BY published_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []*models.Notice
	for rows.Next() {
		var notice models.Notice
		if err := rows.Scan(
			&notice.ID,
			&notice.Title,
			&notice.Description,
			&notice.Audience,
			&notice.PublishedBy,
			&notice.PublishedAt,
			&notice.ExpiresAt,
		); err != nil {
			return nil, err
		}
		notices = append(notices, &notice)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notices, nil
}

// Delete removes a notice
func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notice: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}

	return nil
}
