package shared

import "errors"

// Errors the development backend maps to HTTP statuses.
var (
	// ErrorValidation marks a malformed request (400).
	ErrorValidation = errors.New("validation error")
	// ErrorInvalidLoginPassword covers both an unknown email and a wrong
	// password so the response does not reveal which one it was (401).
	ErrorInvalidLoginPassword = errors.New("invalid login/password")
	// ErrorInvalidAuthheaderFormat is a non-Bearer Authorization header (401).
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")
)
