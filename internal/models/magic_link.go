package models

import "time"

// MagicLink — токен для входа по ссылке из письма.
// Храним только bcrypt-хэш токена (TokenHash), сам токен уходит в письмо.
type MagicLink struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
