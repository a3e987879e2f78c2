package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/constants"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/models"
)

// RequireRecipient loads the recipient named by the :id route parameter, with
// its event preloaded, into the context. Membership checks are left to the
// handlers.
func RequireRecipient() gin.HandlerFunc {
	return func(c *gin.Context) {
		recipientIDStr := c.Param("id")
		recipientID, err := strconv.ParseUint(recipientIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid recipient ID")
			c.Abort()
			return
		}

		var recipient models.Recipient
		if err := database.GetDB().Preload("Event").First(&recipient, recipientID).Error; err != nil {
			apierrors.NotFound(c, "Recipient not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyRecipient, recipient)
		c.Next()
	}
}

// GetRecipient retrieves the recipient loaded by RequireRecipient.
func GetRecipient(c *gin.Context) (models.Recipient, bool) {
	v, exists := c.Get(constants.ContextKeyRecipient)
	if !exists {
		return models.Recipient{}, false
	}
	recipient, ok := v.(models.Recipient)
	return recipient, ok
}
