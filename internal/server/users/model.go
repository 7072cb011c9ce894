package users

import "time"

// User is a backend account. Verified flips once verify-signup succeeds;
// EmailVerified once a one-time code has been confirmed.
type User struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  []byte
	FullName      string
	Structure     string
	Bio           string
	Verified      bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
