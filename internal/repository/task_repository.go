package repository

import (
	"context"
	"time"

	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByIDForOwner finds a task by ID if it belongs to ownerID
func (r *GormTaskRepository) FindByIDForOwner(ctx context.Context, id, ownerID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner lists an owner's tasks, optionally filtered by completion
func (r *GormTaskRepository) ListByOwner(ctx context.Context, ownerID uint64, completed *bool) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	tasks := []models.Task{}
	if err := query.Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByOwner counts an owner's tasks
func (r *GormTaskRepository) CountByOwner(ctx context.Context, ownerID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// Update writes description and completed of an existing task. A task that
// was deleted meanwhile is reported as gorm.ErrRecordNotFound, not re-created.
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND owner_id = ?", task.ID, task.OwnerID).
		Updates(map[string]interface{}{
			"description": task.Description,
			"completed":   task.Completed,
			"updated_at":  task.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Task{}).
			Where("id = ? AND owner_id = ?", task.ID, task.OwnerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Delete deletes a single task
func (r *GormTaskRepository) Delete(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}

// DeleteByOwner deletes every task of ownerID and returns how many were removed
func (r *GormTaskRepository) DeleteByOwner(ctx context.Context, ownerID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
