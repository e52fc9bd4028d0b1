package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskpad/internal/middleware"
	"taskpad/internal/models"
)

const sessionTTL = 24 * time.Hour

// AuthService обменивает проверенную идентичность на сессионный токен.
// Сессии не храним: JWT самодостаточен, отзыв не поддерживается.
type AuthService interface {
	IssueSession(user *models.User) (string, error)
}

type authService struct {
	secret []byte
}

func NewAuthService(secret string) AuthService {
	return &authService{secret: []byte(secret)}
}

func (s *authService) IssueSession(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Onboarded: user.Onboarded,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
