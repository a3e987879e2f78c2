package repository

import (
	"errors"
	"time"

	"github.com/giftwise-dev/giftwise-api/internal/models"
)

// ErrAlreadySent is returned when a sent-reminder row already exists for the
// (user, event, reminder type) triple.
var ErrAlreadySent = errors.New("reminder already sent")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (lowercased)
	FindByEmail(email string) (*models.User, error)

	// ListAll returns every user; the notification sweep iterates this.
	ListAll() ([]models.User, error)
}

// EventRepository defines the membership and reminder-window queries used by
// the access evaluator and the notification sweep.
type EventRepository interface {
	// FindByID finds an event by ID
	FindByID(id uint64) (*models.Event, error)

	// IsAttendee reports whether the user is in the event's attendee set.
	IsAttendee(eventID, userID uint64) (bool, error)

	// HasRecipientNamed reports whether the event has a recipient whose
	// stored name equals (firstName, lastName).
	HasRecipientNamed(eventID uint64, firstName, lastName string) (bool, error)

	// ListUpcomingForUser returns events the user creates or attends whose
	// start falls in [windowStart, windowEnd). When inProgressAt is non-nil,
	// events already in progress at that instant also match.
	ListUpcomingForUser(userID uint64, windowStart, windowEnd time.Time, inProgressAt *time.Time) ([]models.Event, error)

	// ListRecipients returns the event's recipients.
	ListRecipients(eventID uint64) ([]models.Recipient, error)
}

// DiscussionRepository backs the per-event discussion thread store.
type DiscussionRepository interface {
	// GetOrCreate returns the (event, threadType) discussion, creating it on
	// first access. Concurrent creation is reconciled by the unique index:
	// the loser re-reads the winner's row.
	GetOrCreate(eventID uint64, threadType models.ThreadType) (*models.Discussion, error)

	// CreateMessage appends a message to its discussion.
	CreateMessage(msg *models.DiscussionMessage) error

	// ListLast returns the newest n messages in ascending order.
	ListLast(discussionID uint64, n int) ([]models.DiscussionMessage, error)

	// ListAfter returns up to limit messages with ID > afterID in ascending
	// (created_at, id) order.
	ListAfter(discussionID, afterID uint64, limit int) ([]models.DiscussionMessage, error)
}

// ReminderRepository covers sent-reminder idempotency records and
// per-user notification preferences.
type ReminderRepository interface {
	// Record inserts the idempotency row before any mail is sent. Returns
	// ErrAlreadySent when the triple already exists.
	Record(userID, eventID uint64, reminderType models.ReminderType, timing models.ReminderTiming) error

	// Remove deletes a previously recorded row (delivery failed; allow retry).
	Remove(userID, eventID uint64, reminderType models.ReminderType) error

	// PurgeForEvent removes all rows for an event (its start time changed).
	PurgeForEvent(eventID uint64) error

	// FindPreference returns the user's notification preference, defaults
	// applied, falling back to the shipped defaults when no row exists.
	FindPreference(userID uint64) (*models.EmailNotificationPreference, error)
}

// GiftRepository exposes the per-user gift lookups the reminder summary needs.
type GiftRepository interface {
	// FirstCommittedGift returns the user's first gift for the recipient in a
	// committed status, or nil when none exists.
	FirstCommittedGift(recipientID, userID uint64) (*models.GiftForRecipient, error)
}
