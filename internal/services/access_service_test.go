package services

import (
	"testing"
	"time"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type accessTestEnv struct {
	db      *gorm.DB
	service *AccessService
}

func setupAccessTestEnv(t *testing.T) accessTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Recipient{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return accessTestEnv{
		db:      db,
		service: NewAccessService(repository.NewEventRepository(db)),
	}
}

func (env accessTestEnv) createUser(t *testing.T, email, first, last string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", FirstName: first, LastName: last}
	require.NoError(t, env.db.Create(&user).Error)
	return user
}

func (env accessTestEnv) createEvent(t *testing.T, creatorID uint64) models.Event {
	t.Helper()
	now := time.Now()
	event := models.Event{
		Name:      "Holiday Party",
		StartAt:   now.Add(24 * time.Hour),
		EndAt:     now.Add(28 * time.Hour),
		Theme:     models.ThemeHoliday,
		CreatorID: creatorID,
	}
	require.NoError(t, env.db.Create(&event).Error)
	return event
}

func TestEvaluate_Roles(t *testing.T) {
	env := setupAccessTestEnv(t)

	creator := env.createUser(t, "host@example.com", "Harriet", "Host")
	attendee := env.createUser(t, "guest@example.com", "Gary", "Guest")
	outsider := env.createUser(t, "other@example.com", "Olive", "Outsider")
	event := env.createEvent(t, creator.ID)

	require.NoError(t, env.db.Create(&models.EventAttendee{EventID: event.ID, UserID: attendee.ID}).Error)

	access, err := env.service.Evaluate(&creator, &event)
	require.NoError(t, err)
	require.Equal(t, EventAccess{Creator: true}, access)

	access, err = env.service.Evaluate(&attendee, &event)
	require.NoError(t, err)
	require.Equal(t, EventAccess{Attendee: true}, access)

	access, err = env.service.Evaluate(&outsider, &event)
	require.NoError(t, err)
	require.Equal(t, EventAccess{}, access)
}

// A user whose stored name matches a recipient gets the recipient role even
// with no account-level link.
func TestEvaluate_RecipientNameMatch(t *testing.T) {
	env := setupAccessTestEnv(t)

	creator := env.createUser(t, "host@example.com", "Harriet", "Host")
	jane := env.createUser(t, "jane@example.com", "Jane", "Doe")
	event := env.createEvent(t, creator.ID)

	require.NoError(t, env.db.Create(&models.Recipient{
		EventID: event.ID, FirstName: "Jane", LastName: "Doe",
	}).Error)

	access, err := env.service.Evaluate(&jane, &event)
	require.NoError(t, err)
	require.True(t, access.RecipientMatch)

	// Public channel admits her; the contributors channel does not, so gift
	// planning stays hidden from her.
	_, err = env.service.AuthorizeThread(&jane, &event, models.ThreadPublic)
	require.NoError(t, err)

	_, err = env.service.AuthorizeThread(&jane, &event, models.ThreadContributorsOnly)
	require.ErrorIs(t, err, ErrThreadAccessDenied)
}

// Whoever the contributors channel admits, the public channel admits too.
func TestThreadRules_ContributorsSubsetOfPublic(t *testing.T) {
	for _, creator := range []bool{false, true} {
		for _, attendee := range []bool{false, true} {
			for _, match := range []bool{false, true} {
				access := EventAccess{Creator: creator, Attendee: attendee, RecipientMatch: match}

				contributors, err := access.Allowed(models.ThreadContributorsOnly)
				require.NoError(t, err)
				public, err := access.Allowed(models.ThreadPublic)
				require.NoError(t, err)

				if contributors {
					require.True(t, public, "contributors access without public access for %+v", access)
				}
			}
		}
	}
}

func TestAuthorizeThread_InvalidType(t *testing.T) {
	env := setupAccessTestEnv(t)

	creator := env.createUser(t, "host@example.com", "Harriet", "Host")
	event := env.createEvent(t, creator.ID)

	_, err := env.service.AuthorizeThread(&creator, &event, models.ThreadType("secret"))
	require.ErrorIs(t, err, ErrInvalidThreadType)
}

func TestAuthorizeThread_OutsiderDenied(t *testing.T) {
	env := setupAccessTestEnv(t)

	creator := env.createUser(t, "host@example.com", "Harriet", "Host")
	outsider := env.createUser(t, "other@example.com", "Olive", "Outsider")
	event := env.createEvent(t, creator.ID)

	_, err := env.service.AuthorizeThread(&outsider, &event, models.ThreadPublic)
	require.ErrorIs(t, err, ErrThreadAccessDenied)
}
