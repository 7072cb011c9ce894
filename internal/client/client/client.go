package client

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/somapoll/internal/client/models"
)

// Client is the backend contract used by the auth and catalog services.
type Client interface {
	CurrentUser(ctx context.Context) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	VerifySignup(ctx context.Context, email string) error
	CleanupSignup(ctx context.Context, email string) error
	CheckExistingUser(ctx context.Context, username, email string) (*MessageResponse, error)
	Logout(ctx context.Context) error
	VerifyOTP(ctx context.Context, email, code string) (*MessageResponse, error)
	ResendOTP(ctx context.Context, email string) (*MessageResponse, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	ListParties(ctx context.Context) ([]models.Party, error)
}

// TokenSource supplies the optional bearer token for outbound requests.
type TokenSource interface {
	Get(ctx context.Context) (token string, found bool, err error)
}

// Text decodes any JSON value into a string: strings are kept, everything
// else (null, numbers, objects) becomes "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = ""
	return nil
}

// User is the current-user payload.
type User struct {
	ID              *int64 `json:"id"`
	Username        Text   `json:"username"`
	Email           Text   `json:"email"`
	FullName        Text   `json:"full_name"`
	ProfilePicture  Text   `json:"profile_picture"`
	Bio             Text   `json:"bio"`
	PrivacySettings Text   `json:"privacy_settings"`
	Structure       Text   `json:"structure"`
	Facebook        Text   `json:"user_facebook"`
	Instagram       Text   `json:"user_instagram"`
	XTwitter        Text   `json:"user_x_twitter"`
	Threads         Text   `json:"user_threads"`
	YouTube         Text   `json:"user_youtube"`
	LinkedIn        Text   `json:"user_linkedin"`
	TikTok          Text   `json:"user_tiktok"`
	CreatedAt       Text   `json:"created_at"`
	UpdatedAt       Text   `json:"updated_at"`
	IsEmailVerified *bool  `json:"is_email_verified"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is valid when Username is set or OTPRequired is true.
type LoginResponse struct {
	Username    Text `json:"username"`
	Message     Text `json:"message"`
	JWT         Text `json:"jwt"`
	OTPRequired bool `json:"otp_required"`
	Email       Text `json:"email"`
	Error       Text `json:"error"`
}

type SignupRequest struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Structure string `json:"structure,omitempty"`
	Resend    bool   `json:"resend,omitempty"`
}

type SignupResponse struct {
	Username Text `json:"username"`
	Message  Text `json:"message"`
	Email    Text `json:"email"`
	Error    Text `json:"error"`
}

// MessageResponse is the generic reply. JWT is only sent by verify-otp.
type MessageResponse struct {
	Message Text `json:"message"`
	Error   Text `json:"error"`
	JWT     Text `json:"jwt"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type otpRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

type candidatesResponse struct {
	Message    string             `json:"message"`
	Candidates []models.Candidate `json:"candidates"`
	Count      int                `json:"count"`
}

type partiesResponse struct {
	Message string          `json:"message"`
	Parties json.RawMessage `json:"parties"`
	Count   int             `json:"count"`
}

// isJSONArray reports whether raw holds a JSON array.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
