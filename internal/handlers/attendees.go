package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"gorm.io/gorm"
)

// AddAttendee adds a user to the event's attendee set. Creator only.
func (h *EventHandler) AddAttendee(c *gin.Context) {
	event, ok := h.requireCreator(c)
	if !ok {
		return
	}

	type AddAttendeeRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddAttendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to look up user")
		return
	}

	var existing models.EventAttendee
	err := db.Where("event_id = ? AND user_id = ?", event.ID, req.UserID).First(&existing).Error
	if err == nil {
		apierrors.Conflict(c, "User is already an attendee")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		apierrors.InternalError(c, "Failed to check attendee")
		return
	}

	attendee := models.EventAttendee{
		EventID: event.ID,
		UserID:  req.UserID,
	}
	if err := db.Create(&attendee).Error; err != nil {
		apierrors.InternalError(c, "Failed to add attendee")
		return
	}

	c.JSON(http.StatusCreated, attendee)
}

// RemoveAttendee removes a user from the event's attendee set. Creator only.
func (h *EventHandler) RemoveAttendee(c *gin.Context) {
	event, ok := h.requireCreator(c)
	if !ok {
		return
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	result := database.GetDB().
		Where("event_id = ? AND user_id = ?", event.ID, targetID).
		Delete(&models.EventAttendee{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to remove attendee")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Attendee not found")
		return
	}

	c.Status(http.StatusNoContent)
}
