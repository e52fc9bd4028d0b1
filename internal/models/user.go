package models

import "time"

type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	WorkspaceName string     `json:"workspace_name"`
	Onboarded     bool       `json:"onboarded"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

type RequestCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	WorkspaceName string `json:"workspace_name" binding:"required"`
}
