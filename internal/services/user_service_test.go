package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/models"
)

type mockUserRepo struct {
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*models.User, error)
	CreateFunc         func(ctx context.Context, email string) (*models.User, error)
	TouchLastLoginFunc func(ctx context.Context, id int64) error
	UpdateProfileFunc  func(ctx context.Context, id int64, fullName, workspaceName string) error
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, email string) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, email)
	}
	return &models.User{ID: 1, Email: email}, nil
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	if m.TouchLastLoginFunc != nil {
		return m.TouchLastLoginFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, fullName, workspaceName string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, fullName, workspaceName)
	}
	return nil
}

func TestGetOrCreate_NewUser(t *testing.T) {
	touched := false
	repo := &mockUserRepo{
		TouchLastLoginFunc: func(_ context.Context, id int64) error {
			touched = true
			return nil
		},
	}
	svc := NewUserService(repo)

	user, isNew, err := svc.GetOrCreateByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "new@example.com", user.Email)
	assert.True(t, touched)
}

func TestGetOrCreate_ExistingUser(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFunc: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 7, Email: email, Onboarded: true}, nil
		},
	}
	svc := NewUserService(repo)

	user, isNew, err := svc.GetOrCreateByEmail(context.Background(), "old@example.com")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.Onboarded)
}

func TestUpdateProfile_RequiresBothFields(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	_, err := svc.UpdateProfile(context.Background(), 1, "", "Acme")
	assert.Error(t, err)
	_, err = svc.UpdateProfile(context.Background(), 1, "Jane Doe", "")
	assert.Error(t, err)
}
