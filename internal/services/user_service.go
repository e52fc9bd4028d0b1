package services

import (
	"context"
	"fmt"
	"log"

	"taskpad/internal/models"
	"taskpad/internal/repositories"
)

type UserService interface {
	// GetOrCreateByEmail — при первом входе заводим пользователя
	// (onboarded=false). Второй результат — isNewUser.
	GetOrCreateByEmail(ctx context.Context, email string) (*models.User, bool, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, workspaceName string) (*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetOrCreateByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	isNew := false
	if user == nil {
		user, err = s.repo.Create(ctx, email)
		if err != nil {
			return nil, false, err
		}
		isNew = true
		log.Printf("[users] created %s (id=%d)", email, user.ID)
	}
	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		// не фатально для входа
		log.Printf("[users] touch last login failed for id=%d: %v", user.ID, err)
	}
	return user, isNew, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, fullName, workspaceName string) (*models.User, error) {
	if fullName == "" || workspaceName == "" {
		return nil, fmt.Errorf("full name and workspace name are required")
	}
	if err := s.repo.UpdateProfile(ctx, id, fullName, workspaceName); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
