// Package models holds client-side domain records.
package models

// Profile is the local mirror of the backend user entity. Optional fields
// are nil when the backend omitted them or sent an empty value.
type Profile struct {
	ID       *int64
	Username string
	Email    string
	FullName *string

	ProfilePicture  *string
	Bio             *string
	PrivacySettings *string
	Structure       *string

	Facebook  *string
	Instagram *string
	XTwitter  *string
	Threads   *string
	YouTube   *string
	LinkedIn  *string
	TikTok    *string

	CreatedAt *string
	UpdatedAt *string
}

// OptionalString maps "" to nil.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
