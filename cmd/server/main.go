package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/giftwise-dev/giftwise-api/internal/config"
	"github.com/giftwise-dev/giftwise-api/internal/constants"
	"github.com/giftwise-dev/giftwise-api/internal/database"
	"github.com/giftwise-dev/giftwise-api/internal/email"
	"github.com/giftwise-dev/giftwise-api/internal/handlers"
	"github.com/giftwise-dev/giftwise-api/internal/middleware"
	"github.com/giftwise-dev/giftwise-api/internal/repository"
	"github.com/giftwise-dev/giftwise-api/internal/scheduler"
	"github.com/giftwise-dev/giftwise-api/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logging; pretty console output outside release mode
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.GinMode != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	giftRepo := repository.NewGiftRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	accessService := services.NewAccessService(eventRepo)
	discussionService := services.NewDiscussionService(discussionRepo)
	suggestionService := services.NewSuggestionService(cfg.OpenAIAPIKey, cfg.ProviderTimeout)

	mailer := email.NewService(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailerFrom,
		FromName: cfg.MailerName,
	})

	// Reminder sweep
	notificationService := services.NewNotificationService(
		userRepo, eventRepo, reminderRepo, giftRepo, mailer, suggestionService)
	reminderScheduler := scheduler.New(notificationService, cfg.ReminderSweepInterval)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if mailer.IsConfigured() {
		reminderScheduler.Start(rootCtx)
		defer reminderScheduler.Stop()
	} else {
		log.Warn().Msg("SMTP not configured, reminder delivery disabled")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Redis store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Feed polling is the chattiest endpoint; keep it behind a limiter.
	feedLimiter := middleware.NewRateLimiter(1, 3)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(accessService, reminderRepo)
	recipientHandler := handlers.NewRecipientHandler(accessService, suggestionService)
	giftIdeaHandler := handlers.NewGiftIdeaHandler()
	giftHandler := handlers.NewGiftHandler()
	discussionHandler := handlers.NewDiscussionHandler(accessService, discussionService)
	wishListHandler := handlers.NewWishListHandler()
	contactHandler := handlers.NewContactHandler()
	preferenceHandler := handlers.NewPreferenceHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "GiftWise API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Event routes (protected)
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
			events.GET("/:id/discussions/feed", middleware.RequireEvent(), feedLimiter.Middleware(), discussionHandler.Feed)
			events.POST("/:id/discussions/messages", middleware.RequireEvent(), discussionHandler.PostMessage)
		}

		// Recipient routes (protected)
		recipients := api.Group("/recipients")
		recipients.Use(middleware.RequireAuth())
		{
			recipients.GET("/:id/data", middleware.RequireRecipient(), recipientHandler.GetRecipientData)
			recipients.POST("/:id/generate-ideas", middleware.RequireRecipient(), recipientHandler.GenerateIdeas)
			recipients.POST("/:id/gift-ideas", middleware.RequireRecipient(), recipientHandler.CreateGiftIdea)
			recipients.POST("/:id/gifts", middleware.RequireRecipient(), recipientHandler.CreateGift)
			recipients.DELETE("/:id", middleware.RequireRecipient(), recipientHandler.DeleteRecipient)
		}

		// Gift idea routes (protected)
		giftIdeas := api.Group("/gift-ideas")
		giftIdeas.Use(middleware.RequireAuth())
		{
			giftIdeas.GET("/:id", giftIdeaHandler.GetGiftIdea)
			giftIdeas.PATCH("/:id", giftIdeaHandler.UpdateGiftIdea)
			giftIdeas.POST("/:id/add-as-gift", giftIdeaHandler.AddAsGift)
		}

		// Gift routes (protected)
		gifts := api.Group("/gifts")
		gifts.Use(middleware.RequireAuth())
		{
			gifts.PATCH("/:id", giftHandler.UpdateGift)
			gifts.DELETE("/:id", giftHandler.DeleteGift)
		}

		// Wish list routes (protected)
		wishlist := api.Group("/wishlist")
		wishlist.Use(middleware.RequireAuth())
		{
			wishlist.GET("", wishListHandler.ListItems)
			wishlist.POST("", wishListHandler.CreateItem)
			wishlist.PATCH("/:id", wishListHandler.UpdateItem)
			wishlist.DELETE("/:id", wishListHandler.DeleteItem)
		}

		// Contact routes (protected)
		contacts := api.Group("/contacts")
		contacts.Use(middleware.RequireAuth())
		{
			contacts.GET("", contactHandler.ListContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
		}

		// Notification preference routes (protected)
		prefs := api.Group("/notification-preferences")
		prefs.Use(middleware.RequireAuth())
		{
			prefs.GET("", preferenceHandler.GetPreferences)
			prefs.PUT("", preferenceHandler.UpdatePreferences)
		}
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
