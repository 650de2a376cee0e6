package auth

import (
	"strings"

	apierrors "codeberg.org/scholargo/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// validates bearer tokens and adds user info to context
func Middleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "invalid authorization header format")
			return
		}

		identity, err := v.Verify(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set("user_id", identity.UserID)
		c.Set("user_email", identity.Email)

		c.Next()
	}
}

// extracts user_id from context after Middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok && id != ""
}

// extracts the full identity from context after Middleware
func GetIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return Identity{}, false
	}

	return Identity{UserID: userID, Email: c.GetString("user_email")}, true
}
