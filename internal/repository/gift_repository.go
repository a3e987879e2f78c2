package repository

import (
	"errors"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"gorm.io/gorm"
)

// GormGiftRepository is a GORM implementation of GiftRepository
type GormGiftRepository struct {
	db *gorm.DB
}

// NewGiftRepository creates a new GiftRepository
func NewGiftRepository(db *gorm.DB) GiftRepository {
	return &GormGiftRepository{db: db}
}

// FirstCommittedGift returns the user's first gift for the recipient in a
// committed status, or nil when the user has not settled on a gift yet.
func (r *GormGiftRepository) FirstCommittedGift(recipientID, userID uint64) (*models.GiftForRecipient, error) {
	var gift models.GiftForRecipient
	err := r.db.
		Where("recipient_id = ? AND user_id = ? AND status IN ?", recipientID, userID, models.CommittedGiftStatuses).
		Order("id asc").
		First(&gift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gift, nil
}
