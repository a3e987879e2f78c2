package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/models"
)

// GiftIdeaHandler coordinates per-user gift idea rows. Ideas are private to
// the user who recorded them, so every lookup is scoped by owner and a
// foreign id reads as 404.
type GiftIdeaHandler struct{}

// NewGiftIdeaHandler creates a new GiftIdeaHandler.
func NewGiftIdeaHandler() *GiftIdeaHandler {
	return &GiftIdeaHandler{}
}

func (h *GiftIdeaHandler) loadOwned(c *gin.Context) (*models.User, models.GiftIdea, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, models.GiftIdea{}, false
	}

	ideaID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid gift idea ID")
		return nil, models.GiftIdea{}, false
	}

	var idea models.GiftIdea
	if err := database.GetDB().
		Where("id = ? AND user_id = ?", ideaID, user.ID).
		First(&idea).Error; err != nil {
		apierrors.NotFound(c, "Gift idea not found")
		return nil, models.GiftIdea{}, false
	}

	return user, idea, true
}

// GetGiftIdea returns one of the current user's gift ideas.
func (h *GiftIdeaHandler) GetGiftIdea(c *gin.Context) {
	_, idea, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, idea)
}

// UpdateGiftIdea updates idea attributes.
func (h *GiftIdeaHandler) UpdateGiftIdea(c *gin.Context) {
	_, idea, ok := h.loadOwned(c)
	if !ok {
		return
	}

	type UpdateGiftIdeaRequest struct {
		Idea           *string  `json:"idea"`
		EstimatedPrice *float64 `json:"estimated_price"`
		Favorited      *bool    `json:"favorited"`
		Link           *string  `json:"link"`
		Note           *string  `json:"note"`
		Status         *string  `json:"status"`
	}

	var req UpdateGiftIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Idea != nil {
		if *req.Idea == "" {
			apierrors.UnprocessableEntity(c, "idea must not be empty")
			return
		}
		idea.Idea = *req.Idea
	}
	if req.EstimatedPrice != nil {
		idea.EstimatedPrice = req.EstimatedPrice
	}
	if req.Favorited != nil {
		idea.Favorited = *req.Favorited
	}
	if req.Link != nil {
		idea.Link = *req.Link
	}
	if req.Note != nil {
		idea.Note = *req.Note
	}
	if req.Status != nil {
		status := models.GiftStatus(*req.Status)
		if !models.ValidGiftStatus(status) {
			apierrors.UnprocessableEntity(c, "Invalid status")
			return
		}
		idea.Status = status
	}

	if err := database.GetDB().Save(&idea).Error; err != nil {
		apierrors.InternalError(c, "Failed to update gift idea")
		return
	}

	c.JSON(http.StatusOK, idea)
}

// AddAsGift promotes an idea to a gift the user is lining up, copying the
// idea text and price. The idea row survives the promotion.
func (h *GiftIdeaHandler) AddAsGift(c *gin.Context) {
	user, idea, ok := h.loadOwned(c)
	if !ok {
		return
	}

	gift := models.GiftForRecipient{
		RecipientID: idea.RecipientID,
		UserID:      user.ID,
		Idea:        idea.Idea,
		Price:       idea.EstimatedPrice,
		Status:      models.GiftStatusIdea,
	}

	if err := database.GetDB().Create(&gift).Error; err != nil {
		apierrors.InternalError(c, "Failed to add gift")
		return
	}

	c.JSON(http.StatusCreated, gift)
}
