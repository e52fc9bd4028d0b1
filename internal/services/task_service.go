package services

import (
	"context"
	"fmt"
	"time"

	"taskpad/internal/models"
	"taskpad/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id, userID int64, updateData *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id, userID int64) error
	UpdateStatus(ctx context.Context, id, userID int64, to models.TaskStatus) (*models.Task, error)
}

type taskService struct {
	repo repositories.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityLow
	}
	if !task.Status.Valid() || !task.Priority.Valid() {
		return nil, fmt.Errorf("invalid status or priority")
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id, userID int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id, userID int64, updateData *models.Task) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if existingTask == nil {
		return nil, nil
	}

	existingTask.Title = updateData.Title
	existingTask.Description = updateData.Description
	existingTask.DueDate = updateData.DueDate
	if updateData.Status != "" {
		if !updateData.Status.Valid() {
			return nil, fmt.Errorf("invalid status")
		}
		existingTask.Status = updateData.Status
	}
	if updateData.Priority != "" {
		if !updateData.Priority.Valid() {
			return nil, fmt.Errorf("invalid priority")
		}
		existingTask.Priority = updateData.Priority
	}
	existingTask.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existingTask); err != nil {
		return nil, err
	}
	return existingTask, nil
}

func (s *taskService) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *taskService) UpdateStatus(ctx context.Context, id, userID int64, to models.TaskStatus) (*models.Task, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("invalid status")
	}
	if err := s.repo.UpdateStatus(ctx, id, userID, to); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id, userID)
}
