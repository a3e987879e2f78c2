package models

import "time"

type GiftIdea struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	RecipientID    uint64     `gorm:"not null;index" json:"recipient_id"`
	UserID         uint64     `gorm:"not null;index" json:"user_id"`
	Idea           string     `gorm:"type:text;not null" json:"idea"`
	EstimatedPrice *float64   `json:"estimated_price"`
	Favorited      bool       `gorm:"not null;default:false" json:"favorited"`
	Link           string     `gorm:"type:varchar(255)" json:"link"`
	Note           string     `gorm:"type:varchar(255)" json:"note"`
	Status         GiftStatus `gorm:"type:varchar(20);not null;default:'idea'" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Recipient Recipient `gorm:"foreignKey:RecipientID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
