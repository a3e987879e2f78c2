package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/constants"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/models"
)

// RequireEvent loads the event named by the :id route parameter into the
// context. It rejects missing events but performs no role check; per-thread
// and creator-only rules live with the handlers that need them.
func RequireEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventIDStr := c.Param("id")
		eventID, err := strconv.ParseUint(eventIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid event ID")
			c.Abort()
			return
		}

		var event models.Event
		if err := database.GetDB().First(&event, eventID).Error; err != nil {
			apierrors.NotFound(c, "Event not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEvent, event)
		c.Next()
	}
}

// GetEvent retrieves the event loaded by RequireEvent.
func GetEvent(c *gin.Context) (models.Event, bool) {
	v, exists := c.Get(constants.ContextKeyEvent)
	if !exists {
		return models.Event{}, false
	}
	event, ok := v.(models.Event)
	return event, ok
}
