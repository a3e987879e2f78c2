package models

import "time"

// DiscussionMessage is an append-only log entry. Messages are never edited or
// deleted; they go away only when the owning discussion cascades.
type DiscussionMessage struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	DiscussionID uint64    `gorm:"not null;index" json:"discussion_id"`
	UserID       uint64    `gorm:"not null;index" json:"user_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Discussion Discussion `gorm:"foreignKey:DiscussionID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
