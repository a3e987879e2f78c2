package models

import (
	"time"

	"gorm.io/gorm"
)

type EventTheme string

const (
	ThemeBirthday    EventTheme = "birthday"
	ThemeChristmas   EventTheme = "christmas"
	ThemeAnniversary EventTheme = "anniversary"
	ThemeWedding     EventTheme = "wedding"
	ThemeGraduation  EventTheme = "graduation"
	ThemeHoliday     EventTheme = "holiday"
	ThemeOther       EventTheme = "other"
)

var eventThemes = map[EventTheme]bool{
	ThemeBirthday:    true,
	ThemeChristmas:   true,
	ThemeAnniversary: true,
	ThemeWedding:     true,
	ThemeGraduation:  true,
	ThemeHoliday:     true,
	ThemeOther:       true,
}

// ValidTheme reports whether t is part of the closed theme set.
func ValidTheme(t EventTheme) bool {
	return eventThemes[t]
}

type Event struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	StartAt     time.Time      `gorm:"not null" json:"start_at"`
	EndAt       time.Time      `gorm:"not null" json:"end_at"`
	Location    string         `gorm:"type:varchar(255)" json:"location"`
	Theme       EventTheme     `gorm:"type:varchar(30);not null;default:'other'" json:"theme"`
	CreatorID   uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator       User            `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Recipients    []Recipient     `gorm:"foreignKey:EventID" json:"recipients,omitempty"`
	Attendees     []EventAttendee `gorm:"foreignKey:EventID" json:"attendees,omitempty"`
	Discussions   []Discussion    `gorm:"foreignKey:EventID" json:"-"`
	SentReminders []SentReminder  `gorm:"foreignKey:EventID" json:"-"`
}
