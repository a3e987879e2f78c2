package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string         `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth  *time.Time     `json:"date_of_birth"`
	Gender       string         `gorm:"type:varchar(30)" json:"gender"`
	Occupation   string         `gorm:"type:varchar(100)" json:"occupation"`
	Hobbies      string         `gorm:"type:text" json:"hobbies"`
	Likes        string         `gorm:"type:text" json:"likes"`
	Dislikes     string         `gorm:"type:text" json:"dislikes"`
	Street       string         `gorm:"type:varchar(255)" json:"street"`
	City         string         `gorm:"type:varchar(100)" json:"city"`
	State        string         `gorm:"type:varchar(100)" json:"state"`
	ZipCode      string         `gorm:"type:varchar(20)" json:"zip_code"`
	Country      string         `gorm:"type:varchar(100)" json:"country"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedEvents []Event                      `gorm:"foreignKey:CreatorID" json:"-"`
	Attendances   []EventAttendee              `gorm:"foreignKey:UserID" json:"-"`
	WishListItems []WishListItem               `gorm:"foreignKey:UserID" json:"-"`
	Contacts      []Contact                    `gorm:"foreignKey:UserID" json:"-"`
	Preference    *EmailNotificationPreference `gorm:"foreignKey:UserID" json:"-"`
}

// FullName returns the display name used in message views and reminder mail.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// BeforeSave normalizes the email so uniqueness is case-insensitive in practice.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
