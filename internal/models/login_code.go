package models

import "time"

// LoginCode — одна строка на каждую выдачу кода. История сохраняется:
// протухшие коды не удаляем, годность проверяется по expires_at при чтении.
// Запись неизменяема, кроме флага used (false -> true, один раз).
type LoginCode struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}
