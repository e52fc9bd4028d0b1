package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"taskpad/internal/models"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, email string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	UpdateProfile(ctx context.Context, id int64, fullName, workspaceName string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, email, full_name, workspace_name, onboarded, created_at, last_login_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const q = `
		SELECT id, email, full_name, workspace_name, onboarded, created_at, last_login_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, id))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var fullName, workspaceName sql.NullString
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &fullName, &workspaceName, &u.Onboarded, &u.CreatedAt, &lastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	u.FullName = fullName.String
	u.WorkspaceName = workspaceName.String
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, email string) (*models.User, error) {
	const q = `
		INSERT INTO users (email, onboarded, created_at)
		VALUES ($1, FALSE, NOW())
		RETURNING id, created_at
	`
	u := &models.User{Email: email}
	if err := r.DB.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("user create: %w", err)
	}
	return u, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, fullName, workspaceName string) error {
	const q = `
		UPDATE users
		SET full_name = $1, workspace_name = $2, onboarded = TRUE
		WHERE id = $3
	`
	_, err := r.DB.ExecContext(ctx, q, fullName, workspaceName, id)
	return err
}
