package model

import "errors"

var (
	// Login flow errors
	ErrCredentialsNotProvided = errors.New("credentials not provided")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")

	// Throttle errors
	ErrTooManyAttempts = errors.New("too many failed login attempts")

	// Token errors
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenNotProvided = errors.New("authorization token not provided")

	// Store errors. The wrapped detail is for logs only and must never
	// reach a client response.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)
