package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDAndToken finds a user by ID only if token is in its token set
func (r *GormUserRepository) FindByIDAndToken(ctx context.Context, id uint64, token string) (*models.User, error) {
	tokenSubQuery := r.db.Model(&models.UserToken{}).
		Select("1").
		Where("user_tokens.user_id = users.id").
		Where("user_tokens.token = ?", token)

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("users.id = ?", id).
		Where("EXISTS (?)", tokenSubQuery).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether another user already uses email
func (r *GormUserRepository) EmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Update writes the profile columns of an existing user. The avatar and the
// token set are left as stored; a missing row is never re-created.
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"age":           user.Age,
			"password_hash": user.PasswordHash,
			"updated_at":    user.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL reports changed rows, so a no-op write must be told apart from a missing row
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// UpdateAvatar replaces the stored avatar, nil clears it
func (r *GormUserRepository) UpdateAvatar(ctx context.Context, id uint64, avatar []byte) error {
	var value interface{} = avatar
	if avatar == nil {
		value = gorm.Expr("NULL")
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("avatar", value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user and its tokens
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("user_id = ?", id).Delete(&models.UserToken{}).Error; err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}

	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendToken adds a token at the end of the user's token set
func (r *GormUserRepository) AppendToken(ctx context.Context, userID uint64, token string) error {
	return r.db.WithContext(ctx).Create(&models.UserToken{
		UserID: userID,
		Token:  token,
	}).Error
}

// RemoveToken removes one token from the user's token set
func (r *GormUserRepository) RemoveToken(ctx context.Context, userID uint64, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.UserToken{}).Error
}

// ClearTokens removes every token of the user
func (r *GormUserRepository) ClearTokens(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserToken{}).Error
}

// ListTokens returns the user's tokens in issue order
func (r *GormUserRepository) ListTokens(ctx context.Context, userID uint64) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&models.UserToken{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("token", &tokens).Error
	return tokens, err
}
