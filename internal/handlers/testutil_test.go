package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/constants"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	"github.com/giftwise-dev/giftwise-api/internal/middleware"
	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/repository"
	"github.com/giftwise-dev/giftwise-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupTestEnv builds an in-memory database and a router carrying the full
// protected route surface with cookie-backed sessions.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Recipient{},
		&models.GiftIdea{},
		&models.GiftForRecipient{},
		&models.Discussion{},
		&models.DiscussionMessage{},
		&models.WishListItem{},
		&models.Contact{},
		&models.EmailNotificationPreference{},
		&models.SentReminder{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	authService := services.NewAuthService(userRepo)
	accessService := services.NewAccessService(eventRepo)
	discussionService := services.NewDiscussionService(discussionRepo)
	suggestionService := services.NewSuggestionService("", 0)

	authHandler := NewAuthHandler(authService)
	eventHandler := NewEventHandler(accessService, reminderRepo)
	recipientHandler := NewRecipientHandler(accessService, suggestionService)
	giftIdeaHandler := NewGiftIdeaHandler()
	giftHandler := NewGiftHandler()
	discussionHandler := NewDiscussionHandler(accessService, discussionService)
	wishListHandler := NewWishListHandler()
	contactHandler := NewContactHandler()
	preferenceHandler := NewPreferenceHandler()

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		events := api.Group("/events")
		events.Use(middleware.RequireAuth())
		{
			events.POST("", eventHandler.CreateEvent)
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", middleware.RequireEvent(), eventHandler.GetEvent)
			events.PUT("/:id", middleware.RequireEvent(), eventHandler.UpdateEvent)
			events.DELETE("/:id", middleware.RequireEvent(), eventHandler.DeleteEvent)
			events.POST("/:id/attendees", middleware.RequireEvent(), eventHandler.AddAttendee)
			events.DELETE("/:id/attendees/:user_id", middleware.RequireEvent(), eventHandler.RemoveAttendee)
			events.POST("/:id/recipients", middleware.RequireEvent(), recipientHandler.CreateRecipient)
			events.GET("/:id/discussions", middleware.RequireEvent(), discussionHandler.ShowThread)
			events.GET("/:id/discussions/feed", middleware.RequireEvent(), discussionHandler.Feed)
			events.POST("/:id/discussions/messages", middleware.RequireEvent(), discussionHandler.PostMessage)
		}

		recipients := api.Group("/recipients")
		recipients.Use(middleware.RequireAuth())
		{
			recipients.GET("/:id/data", middleware.RequireRecipient(), recipientHandler.GetRecipientData)
			recipients.POST("/:id/generate-ideas", middleware.RequireRecipient(), recipientHandler.GenerateIdeas)
			recipients.POST("/:id/gift-ideas", middleware.RequireRecipient(), recipientHandler.CreateGiftIdea)
			recipients.POST("/:id/gifts", middleware.RequireRecipient(), recipientHandler.CreateGift)
			recipients.DELETE("/:id", middleware.RequireRecipient(), recipientHandler.DeleteRecipient)
		}

		giftIdeas := api.Group("/gift-ideas")
		giftIdeas.Use(middleware.RequireAuth())
		{
			giftIdeas.GET("/:id", giftIdeaHandler.GetGiftIdea)
			giftIdeas.PATCH("/:id", giftIdeaHandler.UpdateGiftIdea)
			giftIdeas.POST("/:id/add-as-gift", giftIdeaHandler.AddAsGift)
		}

		gifts := api.Group("/gifts")
		gifts.Use(middleware.RequireAuth())
		{
			gifts.PATCH("/:id", giftHandler.UpdateGift)
			gifts.DELETE("/:id", giftHandler.DeleteGift)
		}

		wishlist := api.Group("/wishlist")
		wishlist.Use(middleware.RequireAuth())
		{
			wishlist.GET("", wishListHandler.ListItems)
			wishlist.POST("", wishListHandler.CreateItem)
			wishlist.PATCH("/:id", wishListHandler.UpdateItem)
			wishlist.DELETE("/:id", wishListHandler.DeleteItem)
		}

		contacts := api.Group("/contacts")
		contacts.Use(middleware.RequireAuth())
		{
			contacts.GET("", contactHandler.ListContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
		}

		prefs := api.Group("/notification-preferences")
		prefs.Use(middleware.RequireAuth())
		{
			prefs.GET("", preferenceHandler.GetPreferences)
			prefs.PUT("", preferenceHandler.UpdatePreferences)
		}
	}

	return &testEnv{db: db, router: r}
}

// client is an authenticated caller that carries its session cookies across
// requests.
type client struct {
	t       *testing.T
	env     *testEnv
	cookies []*http.Cookie
	user    models.User
}

// signupAndLogin registers a user through the real endpoint and keeps the
// session cookie.
func (env *testEnv) signupAndLogin(t *testing.T, email, first, last string) *client {
	t.Helper()

	c := &client{t: t, env: env}
	w := c.do(http.MethodPost, "/api/auth/signup", map[string]any{
		"email":      email,
		"password":   "supersecret",
		"first_name": first,
		"last_name":  last,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("email = ?", email).First(&user).Error)
	c.user = user
	return c
}

// do issues a request with the client's cookies, retaining any new ones.
func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.env.router.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func (env *testEnv) createEvent(t *testing.T, creatorID uint64) models.Event {
	t.Helper()
	now := time.Now()
	event := models.Event{
		Name:      "Spring Birthday",
		StartAt:   now.Add(48 * time.Hour),
		EndAt:     now.Add(52 * time.Hour),
		Theme:     models.ThemeBirthday,
		CreatorID: creatorID,
	}
	require.NoError(t, env.db.Create(&event).Error)
	return event
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
