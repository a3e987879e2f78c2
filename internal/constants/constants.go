package constants

// Session
const (
	SessionCookieName = "giftwise_session"
	ContextKeyUserID  = "user_id"
)

// Context keys set by access middleware
const (
	ContextKeyEvent     = "event"
	ContextKeyRecipient = "recipient"
)

// Auth
const MinPasswordLength = 6

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Discussion messages
const (
	MaxMessageLength = 5000
	// InitialMessageBatch is how many messages the show endpoint returns.
	InitialMessageBatch = 50
	// FeedPollCap bounds how many rows a single feed poll may return.
	FeedPollCap = 500
)

// Wish list
const MaxWishListItems = 10
