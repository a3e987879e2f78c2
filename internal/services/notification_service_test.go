package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sentMail struct {
	userID    uint64
	eventID   uint64
	kind      models.ReminderType
	summaries []RecipientGiftSummary
}

type fakeMailer struct {
	sent     []sentMail
	failNext bool
}

func (m *fakeMailer) SendEventReminder(user *models.User, event *models.Event, timing models.ReminderTiming) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{userID: user.ID, eventID: event.ID, kind: models.ReminderTypeEvent})
	return nil
}

func (m *fakeMailer) SendGiftReminder(user *models.User, event *models.Event, summaries []RecipientGiftSummary, timing models.ReminderTiming) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{userID: user.ID, eventID: event.ID, kind: models.ReminderTypeGift, summaries: summaries})
	return nil
}

type fakeSuggester struct {
	ideas []string
	err   error
}

func (s *fakeSuggester) SuggestIdeas(ctx context.Context, recipient *models.Recipient, count int) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ideas, nil
}

type notificationTestEnv struct {
	db      *gorm.DB
	service *NotificationService
	mailer  *fakeMailer
	suggest *fakeSuggester
	now     time.Time
}

func setupNotificationTestEnv(t *testing.T) *notificationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Recipient{},
		&models.GiftForRecipient{},
		&models.EmailNotificationPreference{},
		&models.SentReminder{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mailer := &fakeMailer{}
	suggest := &fakeSuggester{ideas: []string{"Camera strap", "Film rolls", "Photo book"}}

	service := NewNotificationService(
		repository.NewUserRepository(db),
		repository.NewEventRepository(db),
		repository.NewReminderRepository(db),
		repository.NewGiftRepository(db),
		mailer,
		suggest,
	)

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	service.SetClock(func() time.Time { return now })

	return &notificationTestEnv{db: db, service: service, mailer: mailer, suggest: suggest, now: now}
}

func (env *notificationTestEnv) createUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
	}
	require.NoError(t, env.db.Create(&user).Error)
	return user
}

func (env *notificationTestEnv) createEvent(t *testing.T, creatorID uint64, startAt time.Time) models.Event {
	t.Helper()
	event := models.Event{
		Name:      "Birthday Bash",
		StartAt:   startAt,
		EndAt:     startAt.Add(4 * time.Hour),
		Theme:     models.ThemeBirthday,
		CreatorID: creatorID,
	}
	require.NoError(t, env.db.Create(&event).Error)
	return event
}

func TestReminderWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 45, 0, time.UTC)

	tests := []struct {
		timing     models.ReminderTiming
		wantStart  time.Time
		wantEnd    time.Time
		inProgress bool
	}{
		{models.TimingAtTime,
			time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 14, 9, 31, 0, 0, time.UTC), true},
		{models.TimingDayOf,
			time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 14, 9, 31, 0, 0, time.UTC), true},
		{models.TimingDayBefore,
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), false},
		{models.TimingTwoDaysBefore,
			time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), false},
		{models.TimingWeekBefore,
			time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC), false},
		{models.TimingTwoWeeksBefore,
			time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC), false},
		{models.TimingMonthBefore,
			time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.timing), func(t *testing.T) {
			start, end, inProgressAt := ReminderWindow(tt.timing, now)
			require.Equal(t, tt.wantStart, start)
			require.Equal(t, tt.wantEnd, end)
			if tt.inProgress {
				require.NotNil(t, inProgressAt)
				require.Equal(t, now, *inProgressAt)
			} else {
				require.Nil(t, inProgressAt)
			}
		})
	}
}

func TestSweep_DayBeforeSendsExactlyOnce(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := env.createUser(t, "alice@example.com")
	// Starts tomorrow, inside the default day_before window.
	env.createEvent(t, user.ID, env.now.Add(25*time.Hour))

	// Default preferences: event reminders day_before, gift reminders
	// week_before. Only the event reminder should fire.
	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Len(t, env.mailer.sent, 1)
	require.Equal(t, models.ReminderTypeEvent, env.mailer.sent[0].kind)
	require.Equal(t, user.ID, env.mailer.sent[0].userID)

	// A second sweep is a no-op.
	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Len(t, env.mailer.sent, 1)
}

func TestSweep_DisabledCategorySendsNothing(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := env.createUser(t, "bob@example.com")
	env.createEvent(t, user.ID, env.now.Add(25*time.Hour))

	pref := models.DefaultPreference(user.ID)
	pref.EventRemindersEnabled = false
	pref.GiftRemindersEnabled = false
	require.NoError(t, env.db.Create(&pref).Error)

	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Empty(t, env.mailer.sent)
}

func TestSweep_AtTimeMatchesInProgressEvent(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := env.createUser(t, "carol@example.com")
	// Started an hour ago and is still running.
	env.createEvent(t, user.ID, env.now.Add(-time.Hour))

	pref := models.DefaultPreference(user.ID)
	pref.EventReminderTiming = models.TimingAtTime
	pref.GiftRemindersEnabled = false
	require.NoError(t, env.db.Create(&pref).Error)

	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Len(t, env.mailer.sent, 1)
}

func TestSweep_DeliveryFailureRetriesNextSweep(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := env.createUser(t, "dave@example.com")
	env.createEvent(t, user.ID, env.now.Add(25*time.Hour))

	env.mailer.failNext = true
	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Empty(t, env.mailer.sent)

	// The idempotency row was released, so the next sweep delivers.
	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Len(t, env.mailer.sent, 1)
}

func TestSweep_GiftReminderSummaries(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := env.createUser(t, "erin@example.com")
	event := env.createEvent(t, user.ID, env.now.Add(25*time.Hour))

	covered := models.Recipient{EventID: event.ID, FirstName: "Jane", LastName: "Doe"}
	uncovered := models.Recipient{EventID: event.ID, FirstName: "John", LastName: "Roe"}
	require.NoError(t, env.db.Create(&covered).Error)
	require.NoError(t, env.db.Create(&uncovered).Error)

	gift := models.GiftForRecipient{
		RecipientID: covered.ID,
		UserID:      user.ID,
		Idea:        "Espresso machine",
		Status:      models.GiftStatusPurchased,
	}
	require.NoError(t, env.db.Create(&gift).Error)

	pref := models.DefaultPreference(user.ID)
	pref.EventRemindersEnabled = false
	pref.GiftReminderTiming = models.TimingDayBefore
	require.NoError(t, env.db.Create(&pref).Error)

	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Len(t, env.mailer.sent, 1)
	require.Equal(t, models.ReminderTypeGift, env.mailer.sent[0].kind)

	summaries := env.mailer.sent[0].summaries
	require.Len(t, summaries, 2)

	byName := map[string]RecipientGiftSummary{}
	for _, s := range summaries {
		byName[s.Recipient.FirstName] = s
	}

	require.NotNil(t, byName["Jane"].SelectedGift)
	require.Equal(t, "Espresso machine", byName["Jane"].SelectedGift.Idea)
	require.Empty(t, byName["Jane"].Suggestions)

	require.Nil(t, byName["John"].SelectedGift)
	require.Equal(t, []string{"Camera strap", "Film rolls", "Photo book"}, byName["John"].Suggestions)
}

func TestSweep_ProviderFailureFallsBackToPlaceholders(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := env.createUser(t, "frank@example.com")
	event := env.createEvent(t, user.ID, env.now.Add(25*time.Hour))

	recipient := models.Recipient{EventID: event.ID, FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, env.db.Create(&recipient).Error)

	pref := models.DefaultPreference(user.ID)
	pref.EventRemindersEnabled = false
	pref.GiftReminderTiming = models.TimingDayBefore
	require.NoError(t, env.db.Create(&pref).Error)

	env.suggest.err = ErrProviderUnavailable

	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Len(t, env.mailer.sent, 1)
	require.Equal(t, PlaceholderSuggestions, env.mailer.sent[0].summaries[0].Suggestions)
}

func TestSweep_SoftDeletedGiftDoesNotCount(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := env.createUser(t, "grace@example.com")
	event := env.createEvent(t, user.ID, env.now.Add(25*time.Hour))

	recipient := models.Recipient{EventID: event.ID, FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, env.db.Create(&recipient).Error)

	gift := models.GiftForRecipient{
		RecipientID: recipient.ID,
		UserID:      user.ID,
		Idea:        "Espresso machine",
		Status:      models.GiftStatusPurchased,
	}
	require.NoError(t, env.db.Create(&gift).Error)
	require.NoError(t, env.db.Delete(&gift).Error)

	pref := models.DefaultPreference(user.ID)
	pref.EventRemindersEnabled = false
	pref.GiftReminderTiming = models.TimingDayBefore
	require.NoError(t, env.db.Create(&pref).Error)

	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))
	require.Len(t, env.mailer.sent, 1)

	summary := env.mailer.sent[0].summaries[0]
	require.Nil(t, summary.SelectedGift)
	require.NotEmpty(t, summary.Suggestions)
}

func TestSweep_AttendeeGetsReminderToo(t *testing.T) {
	env := setupNotificationTestEnv(t)

	creator := env.createUser(t, "host@example.com")
	attendee := env.createUser(t, "guest@example.com")
	event := env.createEvent(t, creator.ID, env.now.Add(25*time.Hour))

	require.NoError(t, env.db.Create(&models.EventAttendee{EventID: event.ID, UserID: attendee.ID}).Error)

	require.NoError(t, env.service.CheckAndSendReminders(context.Background()))

	got := map[uint64]bool{}
	for _, m := range env.mailer.sent {
		got[m.userID] = true
	}
	require.True(t, got[creator.ID])
	require.True(t, got[attendee.ID])
}
