package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskpad/internal/models"
)

type LoginCodeRepository interface {
	Create(ctx context.Context, email, code string, createdAt, expiresAt time.Time) (*models.LoginCode, error)
	FindLatestActive(ctx context.Context, email, code string, now time.Time) (*models.LoginCode, error)
	Consume(ctx context.Context, id int64) (bool, error)
}

type loginCodeRepository struct {
	DB *sql.DB
}

func NewLoginCodeRepository(db *sql.DB) LoginCodeRepository {
	return &loginCodeRepository{DB: db}
}

// Create — каждая выдача кода — новая строка, старые не трогаем.
func (r *loginCodeRepository) Create(ctx context.Context, email, code string, createdAt, expiresAt time.Time) (*models.LoginCode, error) {
	const q = `
		INSERT INTO login_codes (email, code, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id
	`
	lc := &models.LoginCode{Email: email, Code: code, CreatedAt: createdAt, ExpiresAt: expiresAt}
	if err := r.DB.QueryRowContext(ctx, q, email, code, createdAt, expiresAt).Scan(&lc.ID); err != nil {
		return nil, fmt.Errorf("login_code create: %w", err)
	}
	return lc, nil
}

// FindLatestActive — среди совпадающих неиспользованных берём самый свежий
// по expires_at DESC. nil без ошибки, если подходящей записи нет.
func (r *loginCodeRepository) FindLatestActive(ctx context.Context, email, code string, now time.Time) (*models.LoginCode, error) {
	const q = `
		SELECT id, email, code, created_at, expires_at, used
		FROM login_codes
		WHERE email = $1 AND code = $2 AND used = FALSE AND expires_at > $3
		ORDER BY expires_at DESC
		LIMIT 1
	`
	lc := &models.LoginCode{}
	err := r.DB.QueryRowContext(ctx, q, email, code, now).Scan(
		&lc.ID, &lc.Email, &lc.Code, &lc.CreatedAt, &lc.ExpiresAt, &lc.Used,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("login_code latest active: %w", err)
	}
	return lc, nil
}

// Consume — условная запись по конкретному id: used=TRUE только если ещё FALSE.
// false означает, что запись успел забрать параллельный вызов.
func (r *loginCodeRepository) Consume(ctx context.Context, id int64) (bool, error) {
	const q = `
		UPDATE login_codes SET used = TRUE WHERE id = $1 AND used = FALSE
	`
	res, err := r.DB.ExecContext(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("login_code consume: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("login_code consume rows: %w", err)
	}
	return n == 1, nil
}
