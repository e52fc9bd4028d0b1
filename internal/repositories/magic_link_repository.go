package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskpad/internal/models"
)

type MagicLinkRepository interface {
	Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (int64, error)
	GetLatestByEmail(ctx context.Context, email string) (*models.MagicLink, error)
	MarkUsed(ctx context.Context, id int64) (bool, error)
}

type magicLinkRepository struct {
	DB *sql.DB
}

func NewMagicLinkRepository(db *sql.DB) MagicLinkRepository {
	return &magicLinkRepository{DB: db}
}

func (r *magicLinkRepository) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (int64, error) {
	const q = `
		INSERT INTO magic_links (email, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := r.DB.QueryRowContext(ctx, q, email, tokenHash, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("magic_link create: %w", err)
	}
	return id, nil
}

// GetLatestByEmail — последняя выданная ссылка (по created_at DESC);
// каждая новая выдача затмевает предыдущие.
func (r *magicLinkRepository) GetLatestByEmail(ctx context.Context, email string) (*models.MagicLink, error) {
	const q = `
		SELECT id, email, token_hash, expires_at, used_at, created_at
		FROM magic_links
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	ml := &models.MagicLink{}
	var usedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, q, email).Scan(
		&ml.ID, &ml.Email, &ml.TokenHash, &ml.ExpiresAt, &usedAt, &ml.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("magic_link latest: %w", err)
	}
	if usedAt.Valid {
		ml.UsedAt = &usedAt.Time
	}
	return ml, nil
}

func (r *magicLinkRepository) MarkUsed(ctx context.Context, id int64) (bool, error) {
	const q = `
		UPDATE magic_links SET used_at = NOW() WHERE id = $1 AND used_at IS NULL
	`
	res, err := r.DB.ExecContext(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("magic_link mark used: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("magic_link mark used rows: %w", err)
	}
	return n == 1, nil
}
