package models

import "time"

type Contact struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	UserID        uint64    `gorm:"not null;uniqueIndex:idx_contacts_user_contact" json:"user_id"`
	ContactUserID uint64    `gorm:"not null;uniqueIndex:idx_contacts_user_contact" json:"contact_user_id"`
	Note          string    `gorm:"type:text" json:"note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	User        User `gorm:"foreignKey:UserID" json:"-"`
	ContactUser User `gorm:"foreignKey:ContactUserID" json:"contact_user,omitempty"`
}
