package repository

import (
	"errors"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"gorm.io/gorm"
)

// GormDiscussionRepository is a GORM implementation of DiscussionRepository
type GormDiscussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository creates a new DiscussionRepository
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &GormDiscussionRepository{db: db}
}

// GetOrCreate returns the (event, threadType) discussion, creating it lazily.
// The unique index on (event_id, thread_type) arbitrates concurrent creation;
// whichever insert loses re-reads the surviving row.
func (r *GormDiscussionRepository) GetOrCreate(eventID uint64, threadType models.ThreadType) (*models.Discussion, error) {
	var discussion models.Discussion
	err := r.db.Where("event_id = ? AND thread_type = ?", eventID, threadType).First(&discussion).Error
	if err == nil {
		return &discussion, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	discussion = models.Discussion{EventID: eventID, ThreadType: threadType}
	if createErr := r.db.Create(&discussion).Error; createErr != nil {
		// Lost the race: another request created the row first.
		var existing models.Discussion
		if readErr := r.db.Where("event_id = ? AND thread_type = ?", eventID, threadType).First(&existing).Error; readErr != nil {
			return nil, createErr
		}
		return &existing, nil
	}
	return &discussion, nil
}

// CreateMessage appends a message to its discussion
func (r *GormDiscussionRepository) CreateMessage(msg *models.DiscussionMessage) error {
	return r.db.Create(msg).Error
}

// ListLast returns the newest n messages in ascending order
func (r *GormDiscussionRepository) ListLast(discussionID uint64, n int) ([]models.DiscussionMessage, error) {
	var messages []models.DiscussionMessage
	err := r.db.
		Preload("User").
		Where("discussion_id = ?", discussionID).
		Order("created_at desc, id desc").
		Limit(n).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ListAfter returns up to limit messages with ID > afterID, oldest first.
// Ordering by (created_at, id) keeps the feed stable when timestamps tie.
func (r *GormDiscussionRepository) ListAfter(discussionID, afterID uint64, limit int) ([]models.DiscussionMessage, error) {
	var messages []models.DiscussionMessage
	err := r.db.
		Preload("User").
		Where("discussion_id = ? AND id > ?", discussionID, afterID).
		Order("created_at asc, id asc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
