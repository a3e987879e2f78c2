package services

import (
	"context"
	"fmt"
	"time"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/repository"
	"github.com/rs/zerolog/log"
)

// suggestionCountForReminder is how many ideas a gift reminder carries per
// recipient the user has not committed a gift for.
const suggestionCountForReminder = 3

// PlaceholderSuggestions is the fallback when the suggestion provider is
// unavailable during a sweep. Reminders still go out, just generic.
var PlaceholderSuggestions = []string{"Gift Card", "Book", "Tech Accessory"}

// Mailer delivers reminder emails. Implementations must be safe for
// sequential reuse across a sweep.
type Mailer interface {
	SendEventReminder(user *models.User, event *models.Event, timing models.ReminderTiming) error
	SendGiftReminder(user *models.User, event *models.Event, summaries []RecipientGiftSummary, timing models.ReminderTiming) error
}

// GiftSuggester produces gift ideas for a recipient. Satisfied by
// SuggestionService.
type GiftSuggester interface {
	SuggestIdeas(ctx context.Context, recipient *models.Recipient, count int) ([]string, error)
}

// RecipientGiftSummary is one line of a gift reminder: either the gift the
// user already committed to, or suggestions to get them started.
type RecipientGiftSummary struct {
	Recipient    models.Recipient
	SelectedGift *models.GiftForRecipient
	Suggestions  []string
}

// ReminderWindow computes the event-start window a timing selects relative to
// now. The at_time and day_of timings target the current minute and also
// match events already in progress (inProgressAt non-nil); the advance
// timings target a whole calendar day at their offset.
func ReminderWindow(timing models.ReminderTiming, now time.Time) (windowStart, windowEnd time.Time, inProgressAt *time.Time) {
	switch timing {
	case models.TimingAtTime, models.TimingDayOf:
		minute := now.Truncate(time.Minute)
		at := now
		return minute, minute.Add(time.Minute), &at
	case models.TimingDayBefore:
		return calendarDay(now.AddDate(0, 0, 1))
	case models.TimingTwoDaysBefore:
		return calendarDay(now.AddDate(0, 0, 2))
	case models.TimingWeekBefore:
		return calendarDay(now.AddDate(0, 0, 7))
	case models.TimingTwoWeeksBefore:
		return calendarDay(now.AddDate(0, 0, 14))
	case models.TimingMonthBefore:
		return calendarDay(now.AddDate(0, 1, 0))
	default:
		// Unknown timings select nothing.
		return now, now, nil
	}
}

func calendarDay(t time.Time) (time.Time, time.Time, *time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1), nil
}

// NotificationService runs the periodic reminder sweep: for every user, find
// the events their preferences select right now and deliver at most one
// reminder per (user, event, category).
type NotificationService struct {
	users     repository.UserRepository
	events    repository.EventRepository
	reminders repository.ReminderRepository
	gifts     repository.GiftRepository
	mailer    Mailer
	suggester GiftSuggester

	// now is injectable so window math is testable.
	now func() time.Time
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(
	users repository.UserRepository,
	events repository.EventRepository,
	reminders repository.ReminderRepository,
	gifts repository.GiftRepository,
	mailer Mailer,
	suggester GiftSuggester,
) *NotificationService {
	return &NotificationService{
		users:     users,
		events:    events,
		reminders: reminders,
		gifts:     gifts,
		mailer:    mailer,
		suggester: suggester,
		now:       time.Now,
	}
}

// SetClock overrides the sweep's notion of now.
func (s *NotificationService) SetClock(now func() time.Time) {
	s.now = now
}

// CheckAndSendReminders runs one full sweep. A failure for one user never
// aborts the sweep for the rest.
func (s *NotificationService) CheckAndSendReminders(ctx context.Context) error {
	users, err := s.users.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list users for reminder sweep: %w", err)
	}

	now := s.now()
	for i := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.sweepUser(ctx, &users[i], now)
	}
	return nil
}

func (s *NotificationService) sweepUser(ctx context.Context, user *models.User, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Uint64("user_id", user.ID).
				Interface("panic", r).
				Msg("reminder sweep panicked for user")
		}
	}()

	pref, err := s.reminders.FindPreference(user.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to load notification preference")
		return
	}

	if pref.EventRemindersEnabled {
		s.sweepCategory(ctx, user, models.ReminderTypeEvent, pref.EventReminderTiming, now)
	}
	if pref.GiftRemindersEnabled {
		s.sweepCategory(ctx, user, models.ReminderTypeGift, pref.GiftReminderTiming, now)
	}
}

func (s *NotificationService) sweepCategory(ctx context.Context, user *models.User, reminderType models.ReminderType, timing models.ReminderTiming, now time.Time) {
	windowStart, windowEnd, inProgressAt := ReminderWindow(timing, now)

	events, err := s.events.ListUpcomingForUser(user.ID, windowStart, windowEnd, inProgressAt)
	if err != nil {
		log.Error().Err(err).
			Uint64("user_id", user.ID).
			Str("reminder_type", string(reminderType)).
			Msg("failed to query events for reminder window")
		return
	}

	for i := range events {
		s.sendReminder(ctx, user, &events[i], reminderType, timing)
	}
}

// sendReminder records the idempotency row first, then delivers. A duplicate
// row means a previous sweep (or a concurrent one) already handled this
// triple. If delivery fails the row is removed so the next sweep retries.
func (s *NotificationService) sendReminder(ctx context.Context, user *models.User, event *models.Event, reminderType models.ReminderType, timing models.ReminderTiming) {
	if err := s.reminders.Record(user.ID, event.ID, reminderType, timing); err != nil {
		if err == repository.ErrAlreadySent {
			return
		}
		log.Error().Err(err).
			Uint64("user_id", user.ID).
			Uint64("event_id", event.ID).
			Msg("failed to record sent reminder")
		return
	}

	var sendErr error
	switch reminderType {
	case models.ReminderTypeEvent:
		sendErr = s.mailer.SendEventReminder(user, event, timing)
	case models.ReminderTypeGift:
		summaries, err := s.buildGiftSummaries(ctx, user, event)
		if err != nil {
			sendErr = err
			break
		}
		sendErr = s.mailer.SendGiftReminder(user, event, summaries, timing)
	}

	if sendErr != nil {
		log.Error().Err(sendErr).
			Uint64("user_id", user.ID).
			Uint64("event_id", event.ID).
			Str("reminder_type", string(reminderType)).
			Msg("reminder delivery failed")
		if err := s.reminders.Remove(user.ID, event.ID, reminderType); err != nil {
			log.Error().Err(err).
				Uint64("user_id", user.ID).
				Uint64("event_id", event.ID).
				Msg("failed to release sent-reminder record after delivery failure")
		}
		return
	}

	log.Info().
		Uint64("user_id", user.ID).
		Uint64("event_id", event.ID).
		Str("reminder_type", string(reminderType)).
		Str("timing", string(timing)).
		Msg("reminder sent")
}

// buildGiftSummaries assembles one line per recipient: the user's committed
// gift when one exists, otherwise fresh suggestions. Provider failures fall
// back to placeholders rather than blocking the reminder.
func (s *NotificationService) buildGiftSummaries(ctx context.Context, user *models.User, event *models.Event) ([]RecipientGiftSummary, error) {
	recipients, err := s.events.ListRecipients(event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients for gift reminder: %w", err)
	}

	summaries := make([]RecipientGiftSummary, 0, len(recipients))
	for i := range recipients {
		recipient := recipients[i]

		gift, err := s.gifts.FirstCommittedGift(recipient.ID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up committed gift: %w", err)
		}

		summary := RecipientGiftSummary{Recipient: recipient, SelectedGift: gift}
		if gift == nil {
			ideas, err := s.suggester.SuggestIdeas(ctx, &recipient, suggestionCountForReminder)
			if err != nil || len(ideas) == 0 {
				if err != nil {
					log.Warn().Err(err).
						Uint64("recipient_id", recipient.ID).
						Msg("suggestion provider unavailable, using placeholders")
				}
				ideas = PlaceholderSuggestions
			}
			summary.Suggestions = ideas
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
