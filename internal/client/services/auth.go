// Package services contains application services for the somapoll client.
// This file defines the authentication service: the session lifecycle
// (check, login, signup, logout), OTP handling, and housekeeping of the local
// token slot and profile record.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/somapoll/internal/client/client"
	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/client/repositories/profile"
	"github.com/dmitrijs2005/somapoll/internal/client/session"
	"github.com/dmitrijs2005/somapoll/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - CheckAuthStatus: resynchronize Session and Profile with the backend.
//   - Login: authenticate; on success the Session is already resynchronized
//     when the call returns.
//   - Signup: register, verify and log in, cleaning up a partial
//     registration if a later step fails.
//   - CheckExistingUserData: ask whether a username/email pair is free.
//   - Logout: end the server session and always de-authenticate locally.
//   - VerifyOTP / ResendOTP: email one-time-code flow.
//   - RefreshUserData: same as CheckAuthStatus, for manual retries.
//
// Backend failures are reported through models.Result, never as errors.
type AuthService interface {
	CheckAuthStatus(ctx context.Context)
	Login(ctx context.Context, email, password string) models.Result
	Signup(ctx context.Context, req SignupRequest) models.Result
	CheckExistingUserData(ctx context.Context, username, email string) models.Result
	Logout(ctx context.Context)
	VerifyOTP(ctx context.Context, email, code string) models.Result
	ResendOTP(ctx context.Context, email string) models.Result
	RefreshUserData(ctx context.Context)
}

// SignupRequest carries the registration form. FullName and Structure are
// optional.
type SignupRequest struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	Structure string
}

// authService is the only writer of the session state, the token slot and
// the profile record.
type authService struct {
	client   client.Client
	state    *session.State
	tokens   session.TokenStore
	profiles profile.Repository
	log      logging.Logger
}

// NewAuthService constructs an AuthService over the given backend client and
// local stores.
func NewAuthService(c client.Client, state *session.State, tokens session.TokenStore,
	profiles profile.Repository, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{
		client:   c,
		state:    state,
		tokens:   tokens,
		profiles: profiles,
		log:      log.With("component", "auth"),
	}
}

// authOutcome is what a status check concluded.
type authOutcome int

const (
	outcomeFailed authOutcome = iota
	outcomeUnverified
	outcomeAuthenticated
)

func (a *authService) CheckAuthStatus(ctx context.Context) {
	a.checkAuthStatus(ctx)
}

func (a *authService) RefreshUserData(ctx context.Context) {
	a.checkAuthStatus(ctx)
}

// checkAuthStatus fetches the current user. Any failure signs the client out
// and clears the token slot. A payload that explicitly reports an unverified
// email keeps the profile and token but leaves the session signed out.
func (a *authService) checkAuthStatus(ctx context.Context) authOutcome {
	const op = "check-auth-status"

	a.state.SetLoading(true)
	defer a.state.SetLoading(false)

	u, err := a.client.CurrentUser(ctx)
	if err != nil {
		a.logFailure(ctx, op, err)
		a.clearLocal(ctx, op)
		return outcomeFailed
	}

	if err := a.profiles.Replace(ctx, profileFromUser(u)); err != nil {
		a.log.Error(ctx, "profile replace failed", "op", op, "error", err)
	}

	if u.IsEmailVerified != nil && !*u.IsEmailVerified {
		a.state.Reset()
		a.log.Info(ctx, "email not verified", "op", op)
		return outcomeUnverified
	}

	a.state.Authenticate(string(u.Username), true)
	return outcomeAuthenticated
}

func (a *authService) Login(ctx context.Context, email, password string) models.Result {
	const op = "login"

	resp, err := a.client.Login(ctx, client.LoginRequest{Email: email, Password: password})
	if err != nil {
		a.logFailure(ctx, op, err)
		return models.Result{Success: false, Message: failureMessage(err, msgLoginFailed)}
	}

	if resp.OTPRequired {
		return models.Result{
			Success:     true,
			Message:     orDefault(string(resp.Message), msgLoginOTPSent),
			OTPRequired: true,
			Email:       orDefault(string(resp.Email), email),
		}
	}

	a.storeToken(ctx, op, string(resp.JWT))
	a.state.Authenticate(string(resp.Username), true)

	switch a.checkAuthStatus(ctx) {
	case outcomeAuthenticated:
		a.log.Info(ctx, "login succeeded", "op", op)
		return models.Result{Success: true, Message: orDefault(string(resp.Message), msgLoginSuccess)}
	case outcomeUnverified:
		return models.Result{Success: false, Message: msgEmailUnverified, OTPRequired: true, Email: email}
	default:
		return models.Result{Success: false, Message: msgLoginUnconfirmed}
	}
}

func (a *authService) Signup(ctx context.Context, req SignupRequest) models.Result {
	return newSignupSaga(a, req).run(ctx)
}

func (a *authService) CheckExistingUserData(ctx context.Context, username, email string) models.Result {
	const op = "check-existing-user"

	resp, err := a.client.CheckExistingUser(ctx, username, email)
	if err == nil {
		return models.Result{Success: true, Message: orDefault(string(resp.Message), msgUserDataAvailable)}
	}

	a.logFailure(ctx, op, err)
	apiErr, ok := client.AsAPIError(err)
	switch {
	case !ok:
		if client.IsTransport(err) {
			return models.Result{Success: false, Message: msgNetworkError, Errors: []string{}}
		}
		return models.Result{Success: false, Message: msgUserDataError, Errors: []string{}}
	case apiErr.BodyUnparsed:
		return models.Result{Success: false, Message: msgUserDataError, Errors: []string{}}
	case apiErr.Errors != nil:
		return models.Result{Success: false, Message: strings.Join(apiErr.Errors, ", "), Errors: apiErr.Errors}
	default:
		return models.Result{Success: false, Message: msgUserDataTaken, Errors: []string{}}
	}
}

// Logout always de-authenticates locally, whatever the server said.
func (a *authService) Logout(ctx context.Context) {
	const op = "logout"
	if err := a.client.Logout(ctx); err != nil {
		a.logFailure(ctx, op, err)
	}
	a.clearLocal(ctx, op)
}

func (a *authService) VerifyOTP(ctx context.Context, email, code string) models.Result {
	const op = "verify-otp"

	resp, err := a.client.VerifyOTP(ctx, email, code)
	if err != nil {
		a.logFailure(ctx, op, err)
		return models.Result{Success: false, Message: failureMessage(err, msgOTPVerifyFailed)}
	}

	// the backend also sets the session cookie; a stale bearer token must
	// not shadow it
	a.storeToken(ctx, op, string(resp.JWT))
	a.checkAuthStatus(ctx)
	return models.Result{Success: true, Message: orDefault(string(resp.Message), msgOTPVerified)}
}

func (a *authService) ResendOTP(ctx context.Context, email string) models.Result {
	const op = "resend-otp"

	if _, err := a.client.ResendOTP(ctx, email); err != nil {
		a.logFailure(ctx, op, err)
		return models.Result{Success: false, Message: failureMessage(err, msgOTPResendFailed)}
	}
	return models.Result{Success: true, Message: msgOTPResent}
}

// storeToken keeps a token handed out by the backend. Write failures are
// logged; the cookie session may still work without it.
func (a *authService) storeToken(ctx context.Context, op, token string) {
	if token == "" {
		return
	}
	if err := a.tokens.Set(ctx, token); err != nil {
		a.log.Error(ctx, "token store write failed", "op", op, "error", err)
	}
}

// clearLocal resets the session and wipes the profile and token slot. Store
// errors are logged; the session reset itself cannot fail.
func (a *authService) clearLocal(ctx context.Context, op string) {
	a.state.Reset()
	if err := a.profiles.Clear(ctx); err != nil {
		a.log.Error(ctx, "profile clear failed", "op", op, "error", err)
	}
	if err := a.tokens.Clear(ctx); err != nil {
		a.log.Error(ctx, "token store clear failed", "op", op, "error", err)
	}
}

func (a *authService) logFailure(ctx context.Context, op string, err error) {
	args := []any{"op", op, "error", err}
	if apiErr, ok := client.AsAPIError(err); ok {
		args = append(args, "status", apiErr.StatusCode)
	}
	if errors.Is(err, client.ErrUnavailable) {
		a.log.Warn(ctx, "backend unreachable", args...)
		return
	}
	a.log.Warn(ctx, "backend call failed", args...)
}

// failureMessage picks the text shown for a failed call: the network message
// for transport failures, otherwise the server's own message or fallback.
func failureMessage(err error, fallback string) string {
	if client.IsTransport(err) {
		return msgNetworkError
	}
	if apiErr, ok := client.AsAPIError(err); ok {
		return orDefault(apiErr.Message, fallback)
	}
	if semErr, ok := client.AsSemanticError(err); ok {
		return orDefault(semErr.ServerMessage, fallback)
	}
	return fallback
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// profileFromUser projects the current-user payload onto the profile record.
// Empty and non-string values become nil.
func profileFromUser(u *client.User) *models.Profile {
	opt := func(t client.Text) *string { return models.OptionalString(string(t)) }

	p := &models.Profile{
		Username:        string(u.Username),
		Email:           string(u.Email),
		FullName:        opt(u.FullName),
		ProfilePicture:  opt(u.ProfilePicture),
		Bio:             opt(u.Bio),
		PrivacySettings: opt(u.PrivacySettings),
		Structure:       opt(u.Structure),
		Facebook:        opt(u.Facebook),
		Instagram:       opt(u.Instagram),
		XTwitter:        opt(u.XTwitter),
		Threads:         opt(u.Threads),
		YouTube:         opt(u.YouTube),
		LinkedIn:        opt(u.LinkedIn),
		TikTok:          opt(u.TikTok),
		CreatedAt:       opt(u.CreatedAt),
		UpdatedAt:       opt(u.UpdatedAt),
	}
	if u.ID != nil && *u.ID != 0 {
		id := *u.ID
		p.ID = &id
	}
	return p
}
