package services

import "errors"

// Auth errors.
var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// Discussion errors.
var (
	// ErrInvalidThreadType is returned for a thread type outside the closed
	// {public, contributors_only} set. Never silently defaulted.
	ErrInvalidThreadType = errors.New("invalid thread type")

	// ErrThreadAccessDenied is returned when the user's roles on the event do
	// not grant the requested channel.
	ErrThreadAccessDenied = errors.New("no access to this discussion")

	// ErrContentRequired is returned for an empty message body.
	ErrContentRequired = errors.New("content can't be blank")

	// ErrContentTooLong is returned when a message exceeds the length cap.
	ErrContentTooLong = errors.New("content is too long (maximum is 5000 characters)")
)

// Provider errors. All are distinguishable from "zero ideas returned", which
// is a nil error with an empty slice.
var (
	ErrProviderNotConfigured = errors.New("suggestion provider not configured")
	ErrProviderTimeout       = errors.New("suggestion provider timed out")
	ErrProviderUnavailable   = errors.New("suggestion provider unavailable")
	ErrProviderResponse      = errors.New("suggestion provider returned an unusable response")
)
