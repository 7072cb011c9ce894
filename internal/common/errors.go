// Package common defines shared constants and sentinel errors used across
// client and devserver layers of somapoll. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Registration errors.
	ErrUserExists          = errors.New("user already exists")
	ErrRegistrationPending = errors.New("registration not verified")
	ErrInvalidOTP          = errors.New("invalid otp code")
)
