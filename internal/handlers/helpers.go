package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/middleware"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/services"
)

// currentUser loads the authenticated user's row. Replies 401 and returns
// ok=false when the session is missing or stale.
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return &user, true
}

// requireEventMember checks that the current user may view event data.
// Non-members get a 404, not a 403, so event existence is not leaked.
func requireEventMember(c *gin.Context, access *services.AccessService, event models.Event) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	canView, err := access.CanViewEventData(user, &event)
	if err != nil {
		apierrors.InternalError(c, "Failed to check event access")
		return nil, false
	}
	if !canView {
		apierrors.NotFound(c, "Event not found")
		return nil, false
	}
	return user, true
}

// requireEventCreator checks that the current user created the event. Members
// who are not the creator get a 403; strangers get a 404.
func requireEventCreator(c *gin.Context, access *services.AccessService, event models.Event) bool {
	user, ok := currentUser(c)
	if !ok {
		return false
	}
	if event.CreatorID == user.ID {
		return true
	}

	canView, err := access.CanViewEventData(user, &event)
	if err != nil {
		apierrors.InternalError(c, "Failed to check event access")
		return false
	}
	if canView {
		apierrors.Forbidden(c, "Only the event creator can do that")
	} else {
		apierrors.NotFound(c, "Event not found")
	}
	return false
}

// requireRecipientMember checks membership on the recipient's event. Replies
// 404 for non-members.
func requireRecipientMember(c *gin.Context, access *services.AccessService) (*models.User, models.Recipient, bool) {
	recipient, exists := middleware.GetRecipient(c)
	if !exists {
		apierrors.InternalError(c, "Recipient not found in context")
		return nil, models.Recipient{}, false
	}

	user, ok := currentUser(c)
	if !ok {
		return nil, models.Recipient{}, false
	}

	canView, err := access.CanViewEventData(user, &recipient.Event)
	if err != nil {
		apierrors.InternalError(c, "Failed to check event access")
		return nil, models.Recipient{}, false
	}
	if !canView {
		apierrors.NotFound(c, "Recipient not found")
		return nil, models.Recipient{}, false
	}
	return user, recipient, true
}
