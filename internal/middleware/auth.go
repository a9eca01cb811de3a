package middleware

import (
	"context"
	"strings"

	"github.com/actionanand/Ctrl-Alt-Del/internal/constants"
	apierrors "github.com/actionanand/Ctrl-Alt-Del/internal/errors"
	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// TokenValidator resolves the user owning a bearer token
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth checks the bearer token against the owner's current token set
func RequireAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			apierrors.Unauthorized(c)
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			apierrors.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := tokens.Validate(c.Request.Context(), token)
		if err != nil {
			apierrors.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyToken, token)
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// GetCurrentToken retrieves the token the request was authenticated with
func GetCurrentToken(c *gin.Context) (string, bool) {
	token := c.GetString(constants.ContextKeyToken)
	return token, token != ""
}
