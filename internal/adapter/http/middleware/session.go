package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coderanges/swiftcrm/internal/logging"
	"github.com/coderanges/swiftcrm/internal/security"
)

const userIDKey = "user_id"

// SessionAuth reads the session cookie, verifies it, and stores the user
// id on the gin context. Unauthenticated requests are rejected with 401.
func SessionAuth(sessions *security.Sessions, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			unauth(c)
			return
		}

		userID, err := sessions.Verify(raw)
		if err != nil {
			unauth(c)
			return
		}

		c.Set(userIDKey, userID)
		logging.With(c, logging.From(c).With("user_id", userID))
		c.Next()
	}
}

func unauth(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// UserID returns the authenticated user id set by SessionAuth.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
