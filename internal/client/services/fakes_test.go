package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/dmitrijs2005/somapoll/internal/client/client"
	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/client/session"
	"github.com/dmitrijs2005/somapoll/internal/logging"
)

// ---- fake client ----

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	mu sync.Mutex

	CurrentUserRet *client.User
	CurrentUserErr error
	OnCurrentUser  func()

	LoginRet   *client.LoginResponse
	LoginErr   error
	LoginPanic bool
	OnLogin    func()

	SignupRet *client.SignupResponse
	SignupErr error

	VerifySignupErr error
	CleanupErr      error

	CheckRet *client.MessageResponse
	CheckErr error

	LogoutErr error

	VerifyOTPRet *client.MessageResponse
	VerifyOTPErr error
	ResendRet    *client.MessageResponse
	ResendErr    error

	Candidates []models.Candidate
	Parties    []models.Party
	CatalogErr error

	// recorded arguments
	Calls            []string
	LastLogin        client.LoginRequest
	LastSignup       client.SignupRequest
	LastVerifyEmail  string
	LastCleanupEmail string
	LastCleanupCtx   error
	CleanupCount     int
	LastOTPEmail     string
	LastOTPCode      string
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) CurrentUser(context.Context) (*client.User, error) {
	f.record("current-user")
	if f.OnCurrentUser != nil {
		f.OnCurrentUser()
	}
	if f.CurrentUserErr != nil {
		return nil, f.CurrentUserErr
	}
	u := *f.CurrentUserRet
	return &u, nil
}

func (f *fakeClient) Login(_ context.Context, req client.LoginRequest) (*client.LoginResponse, error) {
	f.record("login")
	f.LastLogin = req
	if f.OnLogin != nil {
		f.OnLogin()
	}
	if f.LoginPanic {
		panic("boom")
	}
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(_ context.Context, req client.SignupRequest) (*client.SignupResponse, error) {
	f.record("signup")
	f.LastSignup = req
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) VerifySignup(_ context.Context, email string) error {
	f.record("verify-signup")
	f.LastVerifyEmail = email
	return f.VerifySignupErr
}

func (f *fakeClient) CleanupSignup(ctx context.Context, email string) error {
	f.record("cleanup-signup")
	f.CleanupCount++
	f.LastCleanupEmail = email
	f.LastCleanupCtx = ctx.Err()
	return f.CleanupErr
}

func (f *fakeClient) CheckExistingUser(context.Context, string, string) (*client.MessageResponse, error) {
	f.record("check-existing-user")
	return f.CheckRet, f.CheckErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.record("logout")
	return f.LogoutErr
}

func (f *fakeClient) VerifyOTP(_ context.Context, email, code string) (*client.MessageResponse, error) {
	f.record("verify-otp")
	f.LastOTPEmail, f.LastOTPCode = email, code
	return f.VerifyOTPRet, f.VerifyOTPErr
}

func (f *fakeClient) ResendOTP(_ context.Context, email string) (*client.MessageResponse, error) {
	f.record("resend-otp")
	f.LastOTPEmail = email
	return f.ResendRet, f.ResendErr
}

func (f *fakeClient) ListCandidates(context.Context) ([]models.Candidate, error) {
	f.record("list-candidates")
	return f.Candidates, f.CatalogErr
}

func (f *fakeClient) ListParties(context.Context) ([]models.Party, error) {
	f.record("list-parties")
	return f.Parties, f.CatalogErr
}

// ---- fake profile repository ----

type memProfiles struct {
	p          *models.Profile
	ClearCount int
	ReplaceErr error
}

func (m *memProfiles) Get(context.Context) (*models.Profile, error) {
	return m.p, nil
}

func (m *memProfiles) Replace(_ context.Context, p *models.Profile) error {
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	m.p = p
	return nil
}

func (m *memProfiles) Clear(context.Context) error {
	m.ClearCount++
	m.p = nil
	return nil
}

// ---- helpers ----

type fixture struct {
	client   *fakeClient
	state    *session.State
	tokens   *session.MemoryTokenStore
	profiles *memProfiles
	svc      AuthService
}

func newFixture(t *testing.T, fc *fakeClient) *fixture {
	t.Helper()
	f := &fixture{
		client:   fc,
		state:    session.NewState(),
		tokens:   session.NewMemoryTokenStore(),
		profiles: &memProfiles{},
	}
	f.svc = NewAuthService(fc, f.state, f.tokens, f.profiles, logging.Nop())
	return f
}

func transportErr() error {
	return &client.TransportError{Op: "test", Err: errors.New("connection refused")}
}

func apiErr(status int, msg string, errs ...string) error {
	return &client.APIError{Op: "test", StatusCode: status, Message: msg, Errors: errs}
}

func unauthorized() error {
	return apiErr(http.StatusUnauthorized, "Unauthenticated!")
}

func user(name string) *client.User {
	id := int64(7)
	return &client.User{ID: &id, Username: client.Text(name), Email: client.Text(name + "@gmail.com")}
}

func boolPtr(b bool) *bool { return &b }
