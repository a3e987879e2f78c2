package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/middleware"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/services"
)

// RecipientHandler coordinates recipients and their per-user gift data.
type RecipientHandler struct {
	accessService     *services.AccessService
	suggestionService *services.SuggestionService
}

// NewRecipientHandler creates a new RecipientHandler.
func NewRecipientHandler(accessService *services.AccessService, suggestionService *services.SuggestionService) *RecipientHandler {
	return &RecipientHandler{
		accessService:     accessService,
		suggestionService: suggestionService,
	}
}

// CreateRecipient adds a recipient to the event. Creator only.
func (h *RecipientHandler) CreateRecipient(c *gin.Context) {
	event, exists := middleware.GetEvent(c)
	if !exists {
		apierrors.InternalError(c, "Event not found in context")
		return
	}
	if !requireEventCreator(c, h.accessService, event) {
		return
	}

	type CreateRecipientRequest struct {
		FirstName  string `json:"first_name" binding:"required"`
		LastName   string `json:"last_name" binding:"required"`
		Age        *int   `json:"age"`
		Occupation string `json:"occupation"`
		Hobbies    string `json:"hobbies"`
		Likes      string `json:"likes"`
		Dislikes   string `json:"dislikes"`
	}

	var req CreateRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Age != nil && *req.Age < 0 {
		apierrors.UnprocessableEntity(c, "age must not be negative")
		return
	}

	recipient := models.Recipient{
		EventID:    event.ID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Occupation: req.Occupation,
		Hobbies:    req.Hobbies,
		Likes:      req.Likes,
		Dislikes:   req.Dislikes,
	}

	if err := database.GetDB().Create(&recipient).Error; err != nil {
		apierrors.InternalError(c, "Failed to create recipient")
		return
	}

	c.JSON(http.StatusCreated, recipient)
}

// GetRecipientData returns the recipient's profile plus the current user's
// gift ideas and gifts for them. Each user sees only their own rows.
func (h *RecipientHandler) GetRecipientData(c *gin.Context) {
	user, recipient, ok := requireRecipientMember(c, h.accessService)
	if !ok {
		return
	}

	db := database.GetDB()

	var ideas []models.GiftIdea
	if err := db.Where("recipient_id = ? AND user_id = ?", recipient.ID, user.ID).
		Order("created_at asc").
		Find(&ideas).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch gift ideas")
		return
	}

	var gifts []models.GiftForRecipient
	if err := db.Where("recipient_id = ? AND user_id = ?", recipient.ID, user.ID).
		Order("created_at asc").
		Find(&gifts).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch gifts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipient":  recipient,
		"gift_ideas": ideas,
		"gifts":      gifts,
	})
}

// GenerateIdeas asks the suggestion provider for gift ideas tailored to the
// recipient. Provider failures are a 422 with a generic message; the detail
// only goes to the log.
func (h *RecipientHandler) GenerateIdeas(c *gin.Context) {
	_, recipient, ok := requireRecipientMember(c, h.accessService)
	if !ok {
		return
	}

	type GenerateIdeasRequest struct {
		PriceMin *float64 `json:"price_min"`
		PriceMax *float64 `json:"price_max"`
		NumIdeas int      `json:"num_ideas"`
	}

	req := GenerateIdeasRequest{NumIdeas: 5}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ideas, err := h.suggestionService.GenerateIdeas(
		c.Request.Context(), &recipient, req.PriceMin, req.PriceMax, req.NumIdeas)
	if err != nil {
		logger := middleware.LoggerFrom(c)
		logger.Error().Err(err).
			Uint64("recipient_id", recipient.ID).
			Msg("gift idea generation failed")

		if errors.Is(err, services.ErrProviderNotConfigured) {
			apierrors.ServiceUnavailable(c, "Gift suggestions are not available")
			return
		}
		apierrors.UnprocessableEntity(c, "Failed to generate ideas")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

// CreateGiftIdea records a gift idea for the recipient, owned by the current
// user.
func (h *RecipientHandler) CreateGiftIdea(c *gin.Context) {
	user, recipient, ok := requireRecipientMember(c, h.accessService)
	if !ok {
		return
	}

	type CreateGiftIdeaRequest struct {
		Idea           string   `json:"idea" binding:"required"`
		EstimatedPrice *float64 `json:"estimated_price"`
		Favorited      bool     `json:"favorited"`
		Link           string   `json:"link"`
		Note           string   `json:"note"`
	}

	var req CreateGiftIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	idea := models.GiftIdea{
		RecipientID:    recipient.ID,
		UserID:         user.ID,
		Idea:           req.Idea,
		EstimatedPrice: req.EstimatedPrice,
		Favorited:      req.Favorited,
		Link:           req.Link,
		Note:           req.Note,
		Status:         models.GiftStatusIdea,
	}

	if err := database.GetDB().Create(&idea).Error; err != nil {
		apierrors.InternalError(c, "Failed to create gift idea")
		return
	}

	c.JSON(http.StatusCreated, idea)
}

// CreateGift records a gift the current user is lining up for the recipient.
func (h *RecipientHandler) CreateGift(c *gin.Context) {
	user, recipient, ok := requireRecipientMember(c, h.accessService)
	if !ok {
		return
	}

	type CreateGiftRequest struct {
		Idea     string     `json:"idea" binding:"required"`
		Price    *float64   `json:"price"`
		GiftDate *time.Time `json:"gift_date"`
		Status   string     `json:"status"`
	}

	var req CreateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status := models.GiftStatus(req.Status)
	if req.Status == "" {
		status = models.GiftStatusIdea
	}
	if !models.ValidGiftStatus(status) {
		apierrors.UnprocessableEntity(c, "Invalid status")
		return
	}

	gift := models.GiftForRecipient{
		RecipientID: recipient.ID,
		UserID:      user.ID,
		Idea:        req.Idea,
		Price:       req.Price,
		GiftDate:    req.GiftDate,
		Status:      status,
	}

	if err := database.GetDB().Create(&gift).Error; err != nil {
		apierrors.InternalError(c, "Failed to create gift")
		return
	}

	c.JSON(http.StatusCreated, gift)
}

// DeleteRecipient removes a recipient and every user's gift data for them.
// Creator only.
func (h *RecipientHandler) DeleteRecipient(c *gin.Context) {
	recipient, exists := middleware.GetRecipient(c)
	if !exists {
		apierrors.InternalError(c, "Recipient not found in context")
		return
	}
	if !requireEventCreator(c, h.accessService, recipient.Event) {
		return
	}

	db := database.GetDB()
	if err := db.Where("recipient_id = ?", recipient.ID).Delete(&models.GiftIdea{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete gift ideas")
		return
	}
	if err := db.Unscoped().Where("recipient_id = ?", recipient.ID).Delete(&models.GiftForRecipient{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete gifts")
		return
	}
	if err := db.Delete(&recipient).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete recipient")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipient deleted successfully",
	})
}
