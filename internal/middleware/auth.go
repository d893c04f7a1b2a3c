package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/internal/services"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

// RoleChecker is the slice of RoleService the middleware needs.
type RoleChecker interface {
	GetUserRole(ctx context.Context, userID uuid.UUID) (string, error)
}

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)

		c.Next()
	}
}

// RequireAdmin rejects callers without a role row. The role is looked up
// per request so revocation takes effect immediately; any lookup error is
// treated as no role (fail closed).
func RequireAdmin(roles RoleChecker) drift.HandlerFunc {
	return func(c *drift.Context) {
		userID := GetUserID(c)
		if userID == uuid.Nil {
			c.Unauthorized("not authenticated")
			return
		}

		role, err := roles.GetUserRole(c.Request.Context(), userID)
		if err != nil || role == "" {
			c.Forbidden("admin access required")
			return
		}

		c.Set(UserRoleKey, role)
		c.Next()
	}
}

// RequireOwner guards the owner-only surface (settings, admin management).
func RequireOwner(roles RoleChecker) drift.HandlerFunc {
	return func(c *drift.Context) {
		userID := GetUserID(c)
		if userID == uuid.Nil {
			c.Unauthorized("not authenticated")
			return
		}

		role, err := roles.GetUserRole(c.Request.Context(), userID)
		if err != nil || role != models.RoleOwner {
			c.Forbidden("owner access required")
			return
		}

		c.Set(UserRoleKey, role)
		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

func GetUserRole(c *drift.Context) string {
	if role, ok := c.Get(UserRoleKey); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
