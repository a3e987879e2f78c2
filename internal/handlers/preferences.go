package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	apierrors "github.com/giftwise-dev/giftwise-api/internal/errors"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"gorm.io/gorm"
)

// PreferenceHandler coordinates per-user email notification preferences.
type PreferenceHandler struct{}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler() *PreferenceHandler {
	return &PreferenceHandler{}
}

// GetPreferences returns the user's notification preferences. A user with no
// stored row sees the defaults.
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var pref models.EmailNotificationPreference
	err := database.GetDB().Where("user_id = ?", user.ID).First(&pref).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.InternalError(c, "Failed to fetch preferences")
			return
		}
		pref = models.DefaultPreference(user.ID)
	}

	c.JSON(http.StatusOK, pref)
}

// UpdatePreferences upserts the user's notification preferences.
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type UpdatePreferencesRequest struct {
		EventRemindersEnabled *bool   `json:"event_reminders_enabled"`
		GiftRemindersEnabled  *bool   `json:"gift_reminders_enabled"`
		EventReminderTiming   *string `json:"event_reminder_timing"`
		GiftReminderTiming    *string `json:"gift_reminder_timing"`
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.EventReminderTiming != nil && !models.ValidReminderTiming(models.ReminderTiming(*req.EventReminderTiming)) {
		apierrors.UnprocessableEntity(c, "Invalid event_reminder_timing")
		return
	}
	if req.GiftReminderTiming != nil && !models.ValidReminderTiming(models.ReminderTiming(*req.GiftReminderTiming)) {
		apierrors.UnprocessableEntity(c, "Invalid gift_reminder_timing")
		return
	}

	db := database.GetDB()

	var pref models.EmailNotificationPreference
	err := db.Where("user_id = ?", user.ID).First(&pref).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.InternalError(c, "Failed to fetch preferences")
			return
		}
		pref = models.DefaultPreference(user.ID)
	}

	if req.EventRemindersEnabled != nil {
		pref.EventRemindersEnabled = *req.EventRemindersEnabled
	}
	if req.GiftRemindersEnabled != nil {
		pref.GiftRemindersEnabled = *req.GiftRemindersEnabled
	}
	if req.EventReminderTiming != nil {
		pref.EventReminderTiming = models.ReminderTiming(*req.EventReminderTiming)
	}
	if req.GiftReminderTiming != nil {
		pref.GiftReminderTiming = models.ReminderTiming(*req.GiftReminderTiming)
	}

	if err := db.Save(&pref).Error; err != nil {
		apierrors.InternalError(c, "Failed to update preferences")
		return
	}

	c.JSON(http.StatusOK, pref)
}
