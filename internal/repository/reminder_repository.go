package repository

import (
	"errors"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"gorm.io/gorm"
)

// GormReminderRepository is a GORM implementation of ReminderRepository
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &GormReminderRepository{db: db}
}

// Record inserts the idempotency row inside a transaction before any mail
// goes out. The unique index on the triple closes the race between
// overlapping sweeps: exactly one insert wins.
func (r *GormReminderRepository) Record(userID, eventID uint64, reminderType models.ReminderType, timing models.ReminderTiming) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.SentReminder
		err := tx.Where("user_id = ? AND event_id = ? AND reminder_type = ?", userID, eventID, reminderType).
			First(&existing).Error
		if err == nil {
			return ErrAlreadySent
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		reminder := models.SentReminder{
			UserID:       userID,
			EventID:      eventID,
			ReminderType: reminderType,
			Timing:       timing,
		}
		if createErr := tx.Create(&reminder).Error; createErr != nil {
			// A concurrent sweep inserted between our read and write.
			var raced models.SentReminder
			if readErr := tx.Where("user_id = ? AND event_id = ? AND reminder_type = ?", userID, eventID, reminderType).
				First(&raced).Error; readErr == nil {
				return ErrAlreadySent
			}
			return createErr
		}
		return nil
	})
}

// Remove deletes a previously recorded row so a later sweep may retry
func (r *GormReminderRepository) Remove(userID, eventID uint64, reminderType models.ReminderType) error {
	return r.db.
		Where("user_id = ? AND event_id = ? AND reminder_type = ?", userID, eventID, reminderType).
		Delete(&models.SentReminder{}).Error
}

// PurgeForEvent removes all rows for an event whose start time changed
func (r *GormReminderRepository) PurgeForEvent(eventID uint64) error {
	return r.db.Where("event_id = ?", eventID).Delete(&models.SentReminder{}).Error
}

// FindPreference returns the user's preference with defaults applied,
// synthesizing the shipped defaults when no row exists.
func (r *GormReminderRepository) FindPreference(userID uint64) (*models.EmailNotificationPreference, error) {
	var pref models.EmailNotificationPreference
	err := r.db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultPreference(userID)
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}
