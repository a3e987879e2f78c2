package repository

import (
	"time"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(id uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// IsAttendee reports whether the user is in the event's attendee set
func (r *GormEventRepository) IsAttendee(eventID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.EventAttendee{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasRecipientNamed reports whether the event has a recipient with the name.
// Name equality is the only link between recipients and registered users.
func (r *GormEventRepository) HasRecipientNamed(eventID uint64, firstName, lastName string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Recipient{}).
		Where("event_id = ? AND first_name = ? AND last_name = ?", eventID, firstName, lastName).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUpcomingForUser returns events the user creates or attends whose start
// falls in the window, optionally including events in progress at inProgressAt.
func (r *GormEventRepository) ListUpcomingForUser(userID uint64, windowStart, windowEnd time.Time, inProgressAt *time.Time) ([]models.Event, error) {
	query := r.db.
		Where("creator_id = ? OR id IN (SELECT event_id FROM event_attendees WHERE user_id = ?)", userID, userID)

	if inProgressAt != nil {
		query = query.Where("(start_at >= ? AND start_at < ?) OR (start_at < ? AND end_at > ?)",
			windowStart, windowEnd, *inProgressAt, *inProgressAt)
	} else {
		query = query.Where("start_at >= ? AND start_at < ?", windowStart, windowEnd)
	}

	var events []models.Event
	if err := query.Order("start_at asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListRecipients returns the event's recipients
func (r *GormEventRepository) ListRecipients(eventID uint64) ([]models.Recipient, error) {
	var recipients []models.Recipient
	if err := r.db.Where("event_id = ?", eventID).Order("id asc").Find(&recipients).Error; err != nil {
		return nil, err
	}
	return recipients, nil
}
