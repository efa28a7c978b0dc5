package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roomfinder/service-rooms/internal/domain/user"
	"github.com/roomfinder/service-rooms/internal/platform/auth"
	"github.com/roomfinder/service-rooms/internal/platform/domain"
	"github.com/roomfinder/service-rooms/internal/platform/response"
)

const (
	userIDKey     = "user_id"
	usernameKey   = "username"
	privilegedKey = "privileged"
)

// UserFinder loads the current state of an account.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// AuthMiddleware requires a valid bearer token for an account that still exists.
// The username and privileged flag are taken from the stored account, not from
// the token, so revoked privileges and closed accounts take effect immediately.
func AuthMiddleware(jwtManager *auth.JWTManager, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.Unauthorized(c, "missing bearer token")
			return
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		u, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				response.Unauthorized(c, "account no longer exists")
				return
			}
			response.Error(c, err)
			return
		}

		c.Set(userIDKey, u.ID())
		c.Set(usernameKey, u.Username())
		c.Set(privilegedKey, u.Privileged())
		c.Next()
	}
}

// RequirePrivileged allows only staff or superuser identities through.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(privilegedKey) {
			response.Forbidden(c, "staff privileges required")
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// GetActor returns the authenticated identity as seen by the application layer.
func GetActor(c *gin.Context) (user.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return user.Actor{}, false
	}
	return user.Actor{UserID: id, Privileged: c.GetBool(privilegedKey)}, true
}
