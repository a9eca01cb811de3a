package repository

import (
	"context"

	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
)

// UserRepository defines the interface for user and session token data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByIDAndToken finds a user by ID only if token is in its token set
	FindByIDAndToken(ctx context.Context, id uint64, token string) (*models.User, error)

	// EmailTaken reports whether another user already uses email
	EmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error)

	// Update saves the user's scalar fields
	Update(ctx context.Context, user *models.User) error

	// UpdateAvatar replaces the stored avatar, nil clears it
	UpdateAvatar(ctx context.Context, id uint64, avatar []byte) error

	// Delete removes the user and its tokens
	Delete(ctx context.Context, id uint64) error

	// AppendToken adds a token at the end of the user's token set
	AppendToken(ctx context.Context, userID uint64, token string) error

	// RemoveToken removes one token from the user's token set
	RemoveToken(ctx context.Context, userID uint64, token string) error

	// ClearTokens removes every token of the user
	ClearTokens(ctx context.Context, userID uint64) error

	// ListTokens returns the user's tokens in issue order
	ListTokens(ctx context.Context, userID uint64) ([]string, error)
}

// TaskRepository defines the interface for owner-scoped task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByIDForOwner finds a task by ID if it belongs to ownerID
	FindByIDForOwner(ctx context.Context, id, ownerID uint64) (*models.Task, error)

	// ListByOwner lists an owner's tasks, optionally filtered by completion
	ListByOwner(ctx context.Context, ownerID uint64, completed *bool) ([]models.Task, error)

	// CountByOwner counts an owner's tasks
	CountByOwner(ctx context.Context, ownerID uint64) (int64, error)

	// Update updates a task
	Update(ctx context.Context, task *models.Task) error

	// Delete deletes a single task
	Delete(ctx context.Context, task *models.Task) error

	// DeleteByOwner deletes every task of ownerID and returns how many were removed
	DeleteByOwner(ctx context.Context, ownerID uint64) (int64, error)
}
