package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/actionanand/Ctrl-Alt-Del/internal/avatar"
	"github.com/actionanand/Ctrl-Alt-Del/internal/constants"
	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"github.com/actionanand/Ctrl-Alt-Del/internal/repository"
	"github.com/actionanand/Ctrl-Alt-Del/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrInvalidUpdate        = errors.New("invalid update request")
	ErrAvatarNotFound       = errors.New("avatar not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// allowedUserUpdates is the only set of keys a profile patch may contain.
var allowedUserUpdates = map[string]bool{
	"name":     true,
	"age":      true,
	"email":    true,
	"password": true,
}

// Notifier sends the account lifecycle emails without blocking the caller.
type Notifier interface {
	Welcome(email, name string)
	Cancellation(email, name string)
}

// UserService handles the user lifecycle: signup, login, profile updates,
// account removal with its tasks, and the avatar image.
type UserService struct {
	store    *repository.Store
	tokens   *TokenService
	notifier Notifier
}

// NewUserService creates a new UserService.
func NewUserService(store *repository.Store, tokens *TokenService, notifier Notifier) *UserService {
	return &UserService{
		store:    store,
		tokens:   tokens,
		notifier: notifier,
	}
}

// SignupInput represents the information needed to create a user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

// Create validates and stores a new user together with its first token, then
// sends the welcome email.
func (s *UserService) Create(ctx context.Context, input SignupInput) (*models.User, string, error) {
	name, err := validation.Name(input.Name)
	if err != nil {
		return nil, "", err
	}
	email, err := validation.Email(input.Email)
	if err != nil {
		return nil, "", err
	}
	if err := validation.Password(input.Password); err != nil {
		return nil, "", err
	}
	age := constants.DefaultAge
	if input.Age != nil {
		age = *input.Age
	}
	if err := validation.Age(age); err != nil {
		return nil, "", err
	}

	taken, err := s.store.Users().EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Age:          age,
	}

	var token string
	err = s.store.WithTx(ctx, func(tx *repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		var issueErr error
		token, issueErr = s.tokens.issue(ctx, tx.Users(), user.ID)
		return issueErr
	})
	if err != nil {
		return nil, "", err
	}

	s.notifier.Welcome(user.Email, user.Name)

	return user, token, nil
}

// Authenticate checks the credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// Login authenticates the user and issues a new token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Update applies a profile patch. Any key outside the allow-list, or any
// invalid value, rejects the whole patch and leaves the user untouched.
func (s *UserService) Update(ctx context.Context, user *models.User, patch map[string]json.RawMessage) (*models.User, error) {
	for key := range patch {
		if !allowedUserUpdates[key] {
			return nil, ErrInvalidUpdate
		}
	}

	updated := *user

	if raw, ok := patch["name"]; ok {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, invalidValue("name")
		}
		name, err := validation.Name(value)
		if err != nil {
			return nil, err
		}
		updated.Name = name
	}

	if raw, ok := patch["age"]; ok {
		value, err := validation.DecodeAge(raw)
		if err != nil {
			return nil, err
		}
		if err := validation.Age(value); err != nil {
			return nil, err
		}
		updated.Age = value
	}

	if raw, ok := patch["email"]; ok {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, invalidValue("email")
		}
		email, err := validation.Email(value)
		if err != nil {
			return nil, err
		}
		if email != user.Email {
			taken, err := s.store.Users().EmailTaken(ctx, email, user.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if taken {
				return nil, ErrEmailTaken
			}
		}
		updated.Email = email
	}

	if raw, ok := patch["password"]; ok {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, invalidValue("password")
		}
		if err := validation.Password(value); err != nil {
			return nil, err
		}
		hash, err := hashPassword(value)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	if err := s.store.Users().Update(ctx, &updated); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	*user = updated
	return user, nil
}

// Delete removes the user, its tokens and every task it owns in one
// transaction, then sends the cancellation email.
func (s *UserService) Delete(ctx context.Context, user *models.User) (*models.User, error) {
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		if _, err := tx.Tasks().DeleteByOwner(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if err := tx.Users().Delete(ctx, user.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Cancellation(user.Email, user.Name)

	return user, nil
}

// SetAvatar checks the upload, resizes it and stores it as the user's avatar.
func (s *UserService) SetAvatar(ctx context.Context, user *models.User, filename string, size int64, r io.Reader) error {
	if err := avatar.CheckUpload(filename, size); err != nil {
		return err
	}

	image, err := avatar.Process(r)
	if err != nil {
		return err
	}

	if err := s.store.Users().UpdateAvatar(ctx, user.ID, image); err != nil {
		return fmt.Errorf("failed to store avatar: %w", err)
	}

	user.Avatar = image
	return nil
}

// ClearAvatar removes the user's avatar.
func (s *UserService) ClearAvatar(ctx context.Context, user *models.User) error {
	if err := s.store.Users().UpdateAvatar(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("failed to remove avatar: %w", err)
	}

	user.Avatar = nil
	return nil
}

// GetAvatar returns the stored PNG avatar of a user.
func (s *UserService) GetAvatar(ctx context.Context, userID uint64) ([]byte, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvatarNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.HasAvatar() {
		return nil, ErrAvatarNotFound
	}

	return user.Avatar, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hash), nil
}

func invalidValue(field string) *validation.Error {
	return &validation.Error{Field: field, Message: fmt.Sprintf("Invalid value for %s!", field)}
}
