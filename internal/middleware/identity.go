package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/studyloop/internal/dto"
)

const (
	// UserIDHeader carries the caller identity resolved by the upstream identity provider.
	UserIDHeader = "X-User-ID"
	userIDKey    = "userID"
)

// RequireUser rejects requests without a resolved caller identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing caller identity"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the identity stored by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
