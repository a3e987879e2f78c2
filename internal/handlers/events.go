package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/middleware"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/repository"
	"github.com/giftwise-dev/giftwise-api/internal/services"
	"github.com/giftwise-dev/giftwise-api/internal/utils"
)

// EventHandler coordinates event CRUD and attendee membership.
type EventHandler struct {
	accessService *services.AccessService
	reminders     repository.ReminderRepository
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(accessService *services.AccessService, reminders repository.ReminderRepository) *EventHandler {
	return &EventHandler{
		accessService: accessService,
		reminders:     reminders,
	}
}

// CreateEvent creates a new event owned by the current user.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateEventRequest struct {
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		StartAt     time.Time `json:"start_at" binding:"required"`
		EndAt       time.Time `json:"end_at" binding:"required"`
		Location    string    `json:"location"`
		Theme       string    `json:"theme"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	theme := models.EventTheme(req.Theme)
	if req.Theme == "" {
		theme = models.ThemeOther
	}
	if !models.ValidTheme(theme) {
		apierrors.UnprocessableEntity(c, "Invalid theme")
		return
	}
	if !req.EndAt.After(req.StartAt) {
		apierrors.UnprocessableEntity(c, "end_at must be after start_at")
		return
	}

	event := models.Event{
		Name:        req.Name,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Location:    req.Location,
		Theme:       theme,
		CreatorID:   userID,
	}

	if err := database.GetDB().Create(&event).Error; err != nil {
		apierrors.InternalError(c, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents returns events the user created or attends.
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	var events []models.Event
	if err := database.GetDB().
		Scopes(database.Paginate(params)).
		Where("creator_id = ? OR id IN (SELECT event_id FROM event_attendees WHERE user_id = ?)", userID, userID).
		Order("start_at asc").
		Find(&events).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

// GetEvent returns event details with recipients and attendees. Non-members
// get a 404 rather than confirmation that the event exists.
func (h *EventHandler) GetEvent(c *gin.Context) {
	user, event, ok := h.requireMember(c)
	if !ok {
		return
	}

	if err := database.GetDB().
		Preload("Recipients").
		Preload("Attendees.User").
		First(&event, event.ID).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch event")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":      event,
		"is_creator": event.CreatorID == user.ID,
	})
}

// UpdateEvent updates event attributes. Creator only. Changing start_at
// clears the event's sent-reminder records so the new date notifies again.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	event, ok := h.requireCreator(c)
	if !ok {
		return
	}

	type UpdateEventRequest struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		StartAt     *time.Time `json:"start_at"`
		EndAt       *time.Time `json:"end_at"`
		Location    *string    `json:"location"`
		Theme       *string    `json:"theme"`
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startChanged := false
	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartAt != nil && !req.StartAt.Equal(event.StartAt) {
		event.StartAt = *req.StartAt
		startChanged = true
	}
	if req.EndAt != nil {
		event.EndAt = *req.EndAt
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Theme != nil {
		theme := models.EventTheme(*req.Theme)
		if !models.ValidTheme(theme) {
			apierrors.UnprocessableEntity(c, "Invalid theme")
			return
		}
		event.Theme = theme
	}

	if !event.EndAt.After(event.StartAt) {
		apierrors.UnprocessableEntity(c, "end_at must be after start_at")
		return
	}

	if err := database.GetDB().Save(&event).Error; err != nil {
		apierrors.InternalError(c, "Failed to update event")
		return
	}

	if startChanged {
		if err := h.reminders.PurgeForEvent(event.ID); err != nil {
			apierrors.InternalError(c, "Failed to reset reminders")
			return
		}
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event and its dependent rows. Creator only.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	event, ok := h.requireCreator(c)
	if !ok {
		return
	}

	db := database.GetDB()

	var recipientIDs []uint64
	if err := db.Model(&models.Recipient{}).
		Where("event_id = ?", event.ID).
		Pluck("id", &recipientIDs).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete event")
		return
	}

	if len(recipientIDs) > 0 {
		if err := db.Where("recipient_id IN ?", recipientIDs).Delete(&models.GiftIdea{}).Error; err != nil {
			apierrors.InternalError(c, "Failed to delete event gift ideas")
			return
		}
		if err := db.Unscoped().Where("recipient_id IN ?", recipientIDs).Delete(&models.GiftForRecipient{}).Error; err != nil {
			apierrors.InternalError(c, "Failed to delete event gifts")
			return
		}
	}

	var discussionIDs []uint64
	if err := db.Model(&models.Discussion{}).
		Where("event_id = ?", event.ID).
		Pluck("id", &discussionIDs).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete event")
		return
	}
	if len(discussionIDs) > 0 {
		if err := db.Where("discussion_id IN ?", discussionIDs).Delete(&models.DiscussionMessage{}).Error; err != nil {
			apierrors.InternalError(c, "Failed to delete event messages")
			return
		}
		if err := db.Where("event_id = ?", event.ID).Delete(&models.Discussion{}).Error; err != nil {
			apierrors.InternalError(c, "Failed to delete event discussions")
			return
		}
	}

	if err := db.Where("event_id = ?", event.ID).Delete(&models.Recipient{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete event recipients")
		return
	}
	if err := db.Where("event_id = ?", event.ID).Delete(&models.EventAttendee{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete event attendees")
		return
	}
	if err := db.Where("event_id = ?", event.ID).Delete(&models.SentReminder{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete event reminders")
		return
	}
	if err := db.Delete(&event).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}

// requireMember loads the current user and checks event membership. Replies
// 404 and returns ok=false on failure.
func (h *EventHandler) requireMember(c *gin.Context) (*models.User, models.Event, bool) {
	event, exists := middleware.GetEvent(c)
	if !exists {
		apierrors.InternalError(c, "Event not found in context")
		return nil, models.Event{}, false
	}
	user, ok := requireEventMember(c, h.accessService, event)
	return user, event, ok
}

// requireCreator checks that the current user created the event.
func (h *EventHandler) requireCreator(c *gin.Context) (models.Event, bool) {
	event, exists := middleware.GetEvent(c)
	if !exists {
		apierrors.InternalError(c, "Event not found in context")
		return models.Event{}, false
	}
	if !requireEventCreator(c, h.accessService, event) {
		return models.Event{}, false
	}
	return event, true
}
