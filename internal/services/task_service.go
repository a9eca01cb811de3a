package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"github.com/actionanand/Ctrl-Alt-Del/internal/repository"
	"github.com/actionanand/Ctrl-Alt-Del/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrOwnerNotFound = errors.New("task owner does not exist")
)

var allowedTaskUpdates = map[string]bool{
	"description": true,
	"completed":   true,
}

// TaskService handles task business logic. Every operation is scoped to the
// owning user; a task of another user behaves as if it did not exist.
type TaskService struct {
	store *repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OwnerID     uint64
	Description string
	Completed   *bool
}

// CreateTask creates a task owned by input.OwnerID
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	description, err := validation.Description(input.Description)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Users().FindByID(ctx, input.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	task := &models.Task{
		Description: description,
		OwnerID:     input.OwnerID,
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := s.store.Tasks().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns the owner's tasks, optionally filtered by completion
func (s *TaskService) ListTasks(ctx context.Context, ownerID uint64, completed *bool) ([]models.Task, error) {
	tasks, err := s.store.Tasks().ListByOwner(ctx, ownerID, completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves one of the owner's tasks
func (s *TaskService) GetTask(ctx context.Context, taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.store.Tasks().FindByIDForOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a patch limited to description and completed. The patch
// is applied entirely or not at all.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, ownerID uint64, patch map[string]json.RawMessage) (*models.Task, error) {
	for key := range patch {
		if !allowedTaskUpdates[key] {
			return nil, ErrInvalidUpdate
		}
	}

	task, err := s.GetTask(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if raw, ok := patch["description"]; ok {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, invalidValue("description")
		}
		description, err := validation.Description(value)
		if err != nil {
			return nil, err
		}
		task.Description = description
	}

	if raw, ok := patch["completed"]; ok {
		var value bool
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, invalidValue("completed")
		}
		task.Completed = value
	}

	if err := s.store.Tasks().Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes one of the owner's tasks and returns it
func (s *TaskService) DeleteTask(ctx context.Context, taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Tasks().Delete(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}
