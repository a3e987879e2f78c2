package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/models"
)

// GiftHandler coordinates the gifts a user has lined up. Like gift ideas,
// gifts are private to their owner.
type GiftHandler struct{}

// NewGiftHandler creates a new GiftHandler.
func NewGiftHandler() *GiftHandler {
	return &GiftHandler{}
}

func (h *GiftHandler) loadOwned(c *gin.Context) (models.GiftForRecipient, bool) {
	user, ok := currentUser(c)
	if !ok {
		return models.GiftForRecipient{}, false
	}

	giftID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid gift ID")
		return models.GiftForRecipient{}, false
	}

	var gift models.GiftForRecipient
	if err := database.GetDB().
		Where("id = ? AND user_id = ?", giftID, user.ID).
		First(&gift).Error; err != nil {
		apierrors.NotFound(c, "Gift not found")
		return models.GiftForRecipient{}, false
	}

	return gift, true
}

// UpdateGift updates gift attributes, including status transitions.
func (h *GiftHandler) UpdateGift(c *gin.Context) {
	gift, ok := h.loadOwned(c)
	if !ok {
		return
	}

	type UpdateGiftRequest struct {
		Idea     *string    `json:"idea"`
		Price    *float64   `json:"price"`
		GiftDate *time.Time `json:"gift_date"`
		Status   *string    `json:"status"`
	}

	var req UpdateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Idea != nil {
		if *req.Idea == "" {
			apierrors.UnprocessableEntity(c, "idea must not be empty")
			return
		}
		gift.Idea = *req.Idea
	}
	if req.Price != nil {
		gift.Price = req.Price
	}
	if req.GiftDate != nil {
		gift.GiftDate = req.GiftDate
	}
	if req.Status != nil {
		status := models.GiftStatus(*req.Status)
		if !models.ValidGiftStatus(status) {
			apierrors.UnprocessableEntity(c, "Invalid status")
			return
		}
		gift.Status = status
	}

	if err := database.GetDB().Save(&gift).Error; err != nil {
		apierrors.InternalError(c, "Failed to update gift")
		return
	}

	c.JSON(http.StatusOK, gift)
}

// DeleteGift soft-deletes a gift. The row stays recoverable in the table but
// disappears from every query, including the committed-gift reminder lookup.
func (h *GiftHandler) DeleteGift(c *gin.Context) {
	gift, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(&gift).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete gift")
		return
	}

	c.Status(http.StatusNoContent)
}
