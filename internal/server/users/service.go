// Package users implements accounts for the development backend:
// registration with verify/cleanup, password login, one-time codes and
// token-based authentication.
package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/somapoll/internal/common"
	"github.com/dmitrijs2005/somapoll/internal/logging"
	"github.com/dmitrijs2005/somapoll/internal/server/auth"
	"github.com/dmitrijs2005/somapoll/internal/server/config"
	"github.com/dmitrijs2005/somapoll/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

const otpLength = 6

// Faults are switches that make specific steps fail, for exercising client
// error paths.
type Faults struct {
	FailVerifySignup atomic.Bool
	FailLogin        atomic.Bool
}

// SignupInput is a registration request. FullName and Structure are optional.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	Structure string
}

// LoginResult is either a token for User or, with OTPRequired, a pending
// one-time code challenge.
type LoginResult struct {
	User        *User
	Token       string
	OTPRequired bool
}

type otpEntry struct {
	code    string
	expires time.Time
}

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	otpValidityDuration         time.Duration
	requireOTP                  atomic.Bool
	logger                      logging.Logger

	Faults Faults

	mu   sync.Mutex
	otps map[string]otpEntry
	now  func() time.Time
}

func NewService(repo Repository, cfg *config.Config, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		otpValidityDuration:         cfg.OTPValidityDuration,
		logger:                      logger.With("module", "users"),
		otps:                        make(map[string]otpEntry),
		now:                         time.Now,
	}
	s.requireOTP.Store(cfg.RequireOTP)
	return s
}

// SetRequireOTP toggles the one-time code step at runtime.
func (s *Service) SetRequireOTP(v bool) {
	s.requireOTP.Store(v)
}

// TokenValidity is the lifetime of issued tokens.
func (s *Service) TokenValidity() time.Duration {
	return s.accessTokenValidityDuration
}

// Signup creates an account that stays unverified until VerifySignup or
// VerifyOTP. With one-time codes enabled a code is issued right away.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", shared.ErrorValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("invalid email address: %w", shared.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	requireOTP := s.requireOTP.Load()
	u, err := s.repo.Create(ctx, &User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  hash,
		FullName:      strings.TrimSpace(in.FullName),
		Structure:     strings.TrimSpace(in.Structure),
		EmailVerified: !requireOTP,
	})
	if err != nil {
		return nil, err
	}

	if requireOTP {
		if err := s.issueOTP(ctx, u.Email); err != nil {
			return nil, err
		}
	}
	s.logger.Info(ctx, "user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// ResendOTP replaces the pending code for an account whose email is not yet
// verified.
func (s *Service) ResendOTP(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return fmt.Errorf("email already verified: %w", shared.ErrorValidation)
	}
	return s.issueOTP(ctx, u.Email)
}

func (s *Service) VerifySignup(ctx context.Context, email string) error {
	if s.Faults.FailVerifySignup.Load() {
		return fmt.Errorf("verify signup: %w", common.ErrorInternal)
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	u.Verified = true
	return s.repo.Update(ctx, u)
}

// CleanupSignup removes the account registered under email. A missing
// account is not an error.
func (s *Service) CleanupSignup(ctx context.Context, email string) error {
	err := s.repo.DeleteByEmail(ctx, email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	s.dropOTP(email)
	s.logger.Info(ctx, "signup cleaned up", "found", err == nil)
	return nil
}

// CheckExisting lists why username/email cannot be registered; an empty list
// means both are free.
func (s *Service) CheckExisting(ctx context.Context, username, email string) ([]string, error) {
	usernameTaken, emailTaken, err := s.repo.Exists(ctx, strings.TrimSpace(username), strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	var problems []string
	if usernameTaken {
		problems = append(problems, "Username already taken")
	}
	if emailTaken {
		problems = append(problems, "Email already registered")
	}
	return problems, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.Faults.FailLogin.Load() {
		return nil, fmt.Errorf("login: %w", common.ErrorInternal)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, shared.ErrorInvalidLoginPassword
		}
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, shared.ErrorInvalidLoginPassword
	}
	if !u.Verified && u.EmailVerified {
		return nil, common.ErrRegistrationPending
	}

	if s.requireOTP.Load() && !u.EmailVerified {
		if err := s.issueOTP(ctx, u.Email); err != nil {
			return nil, err
		}
		return &LoginResult{User: u, OTPRequired: true}, nil
	}

	return s.tokenFor(u)
}

// VerifyOTP confirms a pending code, marks the email (and registration)
// verified and signs the user in.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (*LoginResult, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	e, ok := s.otps[key]
	valid := ok && e.code == strings.TrimSpace(code) && s.now().Before(e.expires)
	if valid {
		delete(s.otps, key)
	}
	s.mu.Unlock()

	if !valid {
		return nil, common.ErrInvalidOTP
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	u.EmailVerified, u.Verified = true, true
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.tokenFor(u)
}

// Authenticate resolves a bearer or cookie token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return u, nil
}

// PendingOTP returns the outstanding code for email. The development backend
// has no mail delivery; codes are logged and readable here.
func (s *Service) PendingOTP(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.otps[strings.ToLower(strings.TrimSpace(email))]
	return e.code, ok
}

func (s *Service) tokenFor(u *User) (*LoginResult, error) {
	token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &LoginResult{User: u, Token: token}, nil
}

func (s *Service) issueOTP(ctx context.Context, email string) error {
	code, err := shared.MakeRandDigits(otpLength)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	s.mu.Lock()
	s.otps[strings.ToLower(email)] = otpEntry{code: code, expires: s.now().Add(s.otpValidityDuration)}
	s.mu.Unlock()

	s.logger.Info(ctx, "one-time code issued", "email", email, "code", code)
	return nil
}

func (s *Service) dropOTP(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.otps, strings.ToLower(strings.TrimSpace(email)))
}
