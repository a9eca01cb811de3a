package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/actionanand/Ctrl-Alt-Del/internal/auth"
	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"github.com/actionanand/Ctrl-Alt-Del/internal/repository"
	"gorm.io/gorm"
)

var ErrUnauthorized = errors.New("unauthorized")

// TokenService issues, revokes and validates bearer tokens. A token is only
// accepted while it is a member of its user's token set; the signature alone
// is not enough.
type TokenService struct {
	store  *repository.Store
	signer *auth.Signer
}

// NewTokenService creates a new TokenService.
func NewTokenService(store *repository.Store, signer *auth.Signer) *TokenService {
	return &TokenService{
		store:  store,
		signer: signer,
	}
}

// Issue signs a new token for userID and appends it to the user's token set.
func (s *TokenService) Issue(ctx context.Context, userID uint64) (string, error) {
	return s.issue(ctx, s.store.Users(), userID)
}

func (s *TokenService) issue(ctx context.Context, users repository.UserRepository, userID uint64) (string, error) {
	token, err := s.signer.Sign(userID)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := users.AppendToken(ctx, userID, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// RevokeOne removes token from the user's token set. Absent tokens are ignored.
func (s *TokenService) RevokeOne(ctx context.Context, userID uint64, token string) error {
	if err := s.store.Users().RemoveToken(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAll empties the user's token set.
func (s *TokenService) RevokeAll(ctx context.Context, userID uint64) error {
	if err := s.store.Users().ClearTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

// Tokens returns the user's current tokens in issue order.
func (s *TokenService) Tokens(ctx context.Context, userID uint64) ([]string, error) {
	tokens, err := s.store.Users().ListTokens(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// Validate resolves the user owning token. It fails with ErrUnauthorized when
// the signature is invalid, the user no longer exists or the token was revoked.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.signer.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.store.Users().FindByIDAndToken(ctx, userID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
