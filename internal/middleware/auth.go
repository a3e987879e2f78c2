package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/constants"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
)

// RequireAuth rejects requests that carry no signed-in user in the
// giftwise_session cookie. On success the user ID is copied into the gin
// context so handlers never touch the session directly.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the signed-in user's ID placed in the context by
// RequireAuth. The session backend may round-trip the value as uint or int,
// so all three widths are accepted.
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
