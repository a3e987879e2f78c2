package models

import "time"

type ReminderType string

const (
	ReminderTypeEvent ReminderType = "event"
	ReminderTypeGift  ReminderType = "gift"
)

// SentReminder is the idempotency record for reminder delivery: at most one
// row per (user, event, reminder_type). Rows for an event are purged when its
// start time changes so a materially rescheduled event notifies again.
type SentReminder struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	UserID       uint64         `gorm:"not null;uniqueIndex:idx_sent_reminders_triple" json:"user_id"`
	EventID      uint64         `gorm:"not null;uniqueIndex:idx_sent_reminders_triple" json:"event_id"`
	ReminderType ReminderType   `gorm:"type:varchar(10);not null;uniqueIndex:idx_sent_reminders_triple" json:"reminder_type"`
	Timing       ReminderTiming `gorm:"type:varchar(30);not null" json:"timing"`
	CreatedAt    time.Time      `json:"created_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Event Event `gorm:"foreignKey:EventID" json:"-"`
}
