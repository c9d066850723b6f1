package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pdam-be-svc/pkg/utils"
)

// Context keys for verified token claims
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Auth verifies the Bearer token and stores its claims in the request context
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.UnauthorizedResponse(c, "Authorization token required")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth stores token claims in the context when a valid Bearer token is
// present but lets anonymous requests through. Used on endpoints that serve
// both guests and logged-in customers.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if claims, err := utils.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireRoles rejects requests whose verified token role is not in the list.
// The role always comes from the parsed token, never from the request payload.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.ForbiddenResponse(c, "Insufficient role for this operation")
		c.Abort()
	}
}

// UserIDFromContext returns the authenticated user's id from the context
func UserIDFromContext(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
