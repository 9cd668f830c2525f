package middleware

import (
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/gin-gonic/gin"
)

// userIDHeader carries the opaque user identity. The service trusts the
// gateway in front of it to have authenticated the caller.
const userIDHeader = "X-User-ID"

const userIDKey = "user_id"

// Identity returns a middleware that extracts the caller's user ID from the
// request headers and stores it in both the Gin context and the logging
// context. Requests without the header proceed as anonymous.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID != "" {
			c.Set(userIDKey, userID)
			ctx := logger.SetUserID(c.Request.Context(), userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// UserID returns the caller's user ID, or an empty string for anonymous
// requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
