package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/models"
)

// ==============================================
// MOCK REPOSITORY
// ==============================================

type mockTaskRepo struct {
	StoreFunc        func(ctx context.Context, task *models.Task) error
	FindByIDFunc     func(ctx context.Context, id, userID int64) (*models.Task, error)
	FindAllFunc      func(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	UpdateFunc       func(ctx context.Context, task *models.Task) error
	DeleteFunc       func(ctx context.Context, id, userID int64) error
	UpdateStatusFunc func(ctx context.Context, id, userID int64, to models.TaskStatus) error
}

func (m *mockTaskRepo) Store(ctx context.Context, task *models.Task) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, task)
	}
	task.ID = 1
	return nil
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id, userID int64) (*models.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *mockTaskRepo) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id, userID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockTaskRepo) UpdateStatus(ctx context.Context, id, userID int64, to models.TaskStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, userID, to)
	}
	return nil
}

// ==============================================
// TESTS
// ==============================================

func TestTaskCreate_Defaults(t *testing.T) {
	var stored *models.Task
	repo := &mockTaskRepo{
		StoreFunc: func(_ context.Context, task *models.Task) error {
			task.ID = 42
			stored = task
			return nil
		},
	}
	svc := NewTaskService(repo)

	created, err := svc.Create(context.Background(), &models.Task{UserID: 1, Title: "Write report"})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, models.StatusTodo, created.Status)
	assert.Equal(t, models.PriorityLow, created.Priority)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Second)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestTaskCreate_RequiresTitle(t *testing.T) {
	svc := NewTaskService(&mockTaskRepo{})

	_, err := svc.Create(context.Background(), &models.Task{UserID: 1})
	assert.Error(t, err)
}

func TestTaskCreate_RejectsUnknownStatus(t *testing.T) {
	svc := NewTaskService(&mockTaskRepo{})

	_, err := svc.Create(context.Background(), &models.Task{UserID: 1, Title: "x", Status: "archived"})
	assert.Error(t, err)
}

func TestTaskUpdate_NotFound(t *testing.T) {
	svc := NewTaskService(&mockTaskRepo{})

	updated, err := svc.Update(context.Background(), 99, 1, &models.Task{Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestTaskUpdate_KeepsStatusWhenOmitted(t *testing.T) {
	existing := &models.Task{ID: 5, UserID: 1, Title: "old", Status: models.StatusInProgress, Priority: models.PriorityHigh}
	repo := &mockTaskRepo{
		FindByIDFunc: func(_ context.Context, id, userID int64) (*models.Task, error) {
			return existing, nil
		},
	}
	svc := NewTaskService(repo)

	updated, err := svc.Update(context.Background(), 5, 1, &models.Task{Title: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
}

func TestTaskUpdateStatus_Validates(t *testing.T) {
	svc := NewTaskService(&mockTaskRepo{})

	_, err := svc.UpdateStatus(context.Background(), 1, 1, "bogus")
	assert.Error(t, err)
}
