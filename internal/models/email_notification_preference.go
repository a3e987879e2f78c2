package models

import (
	"time"

	"gorm.io/gorm"
)

// ReminderTiming selects how far in advance of an event a reminder fires.
type ReminderTiming string

const (
	TimingAtTime         ReminderTiming = "at_time"
	TimingDayOf          ReminderTiming = "day_of"
	TimingDayBefore      ReminderTiming = "day_before"
	TimingTwoDaysBefore  ReminderTiming = "two_days_before"
	TimingWeekBefore     ReminderTiming = "week_before"
	TimingTwoWeeksBefore ReminderTiming = "two_weeks_before"
	TimingMonthBefore    ReminderTiming = "month_before"
)

var reminderTimings = map[ReminderTiming]bool{
	TimingAtTime:         true,
	TimingDayOf:          true,
	TimingDayBefore:      true,
	TimingTwoDaysBefore:  true,
	TimingWeekBefore:     true,
	TimingTwoWeeksBefore: true,
	TimingMonthBefore:    true,
}

// ValidReminderTiming reports whether t is one of the seven timing keys.
func ValidReminderTiming(t ReminderTiming) bool {
	return reminderTimings[t]
}

// EmailNotificationPreference is one-to-one with a user. Missing rows and
// empty timing columns fall back to defaults at load time, so callers always
// see a fully populated preference.
type EmailNotificationPreference struct {
	ID                    uint64         `gorm:"primarykey" json:"id"`
	UserID                uint64         `gorm:"not null;uniqueIndex" json:"user_id"`
	// No column default on the enabled flags: a default tag would make gorm
	// drop false values on insert, turning a disabled category back on.
	EventRemindersEnabled bool           `gorm:"not null" json:"event_reminders_enabled"`
	GiftRemindersEnabled  bool           `gorm:"not null" json:"gift_reminders_enabled"`
	EventReminderTiming   ReminderTiming `gorm:"type:varchar(30)" json:"event_reminder_timing"`
	GiftReminderTiming    ReminderTiming `gorm:"type:varchar(30)" json:"gift_reminder_timing"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// ApplyDefaults fills empty timing columns with the shipped defaults.
func (p *EmailNotificationPreference) ApplyDefaults() {
	if p.EventReminderTiming == "" {
		p.EventReminderTiming = TimingDayBefore
	}
	if p.GiftReminderTiming == "" {
		p.GiftReminderTiming = TimingWeekBefore
	}
}

// DefaultPreference returns the preference used when a user has no stored row.
func DefaultPreference(userID uint64) EmailNotificationPreference {
	p := EmailNotificationPreference{
		UserID:                userID,
		EventRemindersEnabled: true,
		GiftRemindersEnabled:  true,
	}
	p.ApplyDefaults()
	return p
}

// AfterFind normalizes rows persisted before a timing column existed.
func (p *EmailNotificationPreference) AfterFind(tx *gorm.DB) error {
	p.ApplyDefaults()
	return nil
}
