package middleware

import (
	"strings"

	"quiz_portal_backend/internal/config"
	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey  = "user"
	ctxRolesKey = "roles"
)

// UserResolver maps a verified token subject to a provisioned portal user.
type UserResolver interface {
	FindActiveBySubject(subjectID string) (*model.AppUser, []string, error)
}

// AuthMiddleware verifies the bearer token and resolves its subject to an
// active app_user. Role codes come from the database, not the token.
func AuthMiddleware(cfg *config.Config, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c, "Missing Bearer token")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(tokenString, cfg.JWTSecret())
		if err != nil {
			util.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		user, roles, err := users.FindActiveBySubject(claims.Subject)
		if err != nil {
			util.Forbidden(c, "No matching portal user for signed-in caller")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxRolesKey, roles)
		c.Next()
	}
}

// RoleMiddleware gates a route on system-wide role codes. System admins
// always pass.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			util.Unauthorized(c, "Sign in required")
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if HasRole(c, model.RoleSystemAdmin) || HasRole(c, role) {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c, "Insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *model.AppUser {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*model.AppUser)
	if !ok {
		return nil
	}
	return user
}

func CurrentRoles(c *gin.Context) []string {
	v, exists := c.Get(ctxRolesKey)
	if !exists {
		return nil
	}
	roles, ok := v.([]string)
	if !ok {
		return nil
	}
	return roles
}

func HasRole(c *gin.Context, code string) bool {
	for _, r := range CurrentRoles(c) {
		if r == code {
			return true
		}
	}
	return false
}
