package models

import (
	"time"

	"gorm.io/gorm"
)

type GiftStatus string

const (
	GiftStatusIdea       GiftStatus = "idea"
	GiftStatusBacklogged GiftStatus = "backlogged"
	GiftStatusPurchased  GiftStatus = "purchased"
	GiftStatusDelivered  GiftStatus = "delivered"
	GiftStatusWrapped    GiftStatus = "wrapped"
	GiftStatusLiked      GiftStatus = "liked"
)

var giftStatuses = map[GiftStatus]bool{
	GiftStatusIdea:       true,
	GiftStatusBacklogged: true,
	GiftStatusPurchased:  true,
	GiftStatusDelivered:  true,
	GiftStatusWrapped:    true,
	GiftStatusLiked:      true,
}

// CommittedGiftStatuses are the states that count as "this gift is handled"
// when the gift-reminder summary is built.
var CommittedGiftStatuses = []GiftStatus{
	GiftStatusPurchased,
	GiftStatusDelivered,
	GiftStatusWrapped,
	GiftStatusLiked,
}

// ValidGiftStatus reports whether s is part of the closed status set.
func ValidGiftStatus(s GiftStatus) bool {
	return giftStatuses[s]
}

// GiftForRecipient records a gift a user has actually lined up for a
// recipient, as opposed to a candidate GiftIdea. Each user keeps an
// independent set per recipient so contributors cannot spoil each other.
type GiftForRecipient struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	RecipientID uint64         `gorm:"not null;index" json:"recipient_id"`
	UserID      uint64         `gorm:"not null;index" json:"user_id"`
	Idea        string         `gorm:"type:text;not null" json:"idea"`
	Price       *float64       `json:"price"`
	GiftDate    *time.Time     `json:"gift_date"`
	Status      GiftStatus     `gorm:"type:varchar(20);not null;default:'idea';index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Recipient Recipient `gorm:"foreignKey:RecipientID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
