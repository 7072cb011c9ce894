package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/somapoll/internal/client/client"
	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/client/provider"
	"github.com/dmitrijs2005/somapoll/internal/client/session"
)

// stubBackend is a scripted client.Client: one account, password "secret1",
// optional one-time code "123456".
type stubBackend struct {
	mu sync.Mutex

	loggedIn   bool
	requireOTP bool
	taken      []string
	catalogErr error

	calls      []string
	lastSignup client.SignupRequest
	lastLogin  client.LoginRequest
}

func (s *stubBackend) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubBackend) called(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (s *stubBackend) CurrentUser(context.Context) (*client.User, error) {
	s.record("current-user")
	if !s.loggedIn {
		return nil, &client.APIError{Op: "current-user", StatusCode: http.StatusUnauthorized, Message: "Unauthenticated!"}
	}
	id := int64(7)
	return &client.User{
		ID:        &id,
		Username:  "student",
		Email:     "student@gmail.com",
		FullName:  "Student One",
		Structure: "Main Campus",
		TikTok:    "@stu",
	}, nil
}

func (s *stubBackend) Login(_ context.Context, req client.LoginRequest) (*client.LoginResponse, error) {
	s.record("login")
	s.lastLogin = req
	if req.Password != "secret1" {
		return nil, &client.APIError{Op: "login", StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	if s.requireOTP {
		return &client.LoginResponse{OTPRequired: true, Email: client.Text(req.Email), Message: "OTP sent to your email"}, nil
	}
	s.loggedIn = true
	return &client.LoginResponse{Username: "student", JWT: "tok"}, nil
}

func (s *stubBackend) Signup(_ context.Context, req client.SignupRequest) (*client.SignupResponse, error) {
	s.record("signup")
	s.lastSignup = req
	return &client.SignupResponse{Username: client.Text(req.Username)}, nil
}

func (s *stubBackend) VerifySignup(context.Context, string) error {
	s.record("verify-signup")
	return nil
}

func (s *stubBackend) CleanupSignup(context.Context, string) error {
	s.record("cleanup-signup")
	return nil
}

func (s *stubBackend) CheckExistingUser(context.Context, string, string) (*client.MessageResponse, error) {
	s.record("check-existing-user")
	if len(s.taken) > 0 {
		return nil, &client.APIError{Op: "check-existing-user", StatusCode: http.StatusConflict, Errors: s.taken}
	}
	return &client.MessageResponse{Message: "Username and email are available"}, nil
}

func (s *stubBackend) Logout(context.Context) error {
	s.record("logout")
	s.loggedIn = false
	return nil
}

func (s *stubBackend) VerifyOTP(_ context.Context, _, code string) (*client.MessageResponse, error) {
	s.record("verify-otp")
	if code != "123456" {
		return nil, &client.APIError{Op: "verify-otp", StatusCode: http.StatusBadRequest, Message: "Invalid or expired OTP"}
	}
	s.loggedIn = true
	s.requireOTP = false
	return &client.MessageResponse{Message: "OTP verified"}, nil
}

func (s *stubBackend) ResendOTP(context.Context, string) (*client.MessageResponse, error) {
	s.record("resend-otp")
	return &client.MessageResponse{Message: "OTP resent"}, nil
}

func (s *stubBackend) ListCandidates(context.Context) ([]models.Candidate, error) {
	s.record("list-candidates")
	if s.catalogErr != nil {
		return nil, s.catalogErr
	}
	return []models.Candidate{
		{ID: 1, Name: "Amina Njoroge", Department: "Engineering", Votes: 120, SupportersCount: 48, Manifesto: "Longer library hours"},
		{ID: 2, Name: "Brian Otieno", Department: "Business", Votes: 98, SupportersCount: 31},
	}, nil
}

func (s *stubBackend) ListParties(context.Context) ([]models.Party, error) {
	s.record("list-parties")
	if s.catalogErr != nil {
		return nil, s.catalogErr
	}
	return []models.Party{{ID: 1, Name: "Forward Together", Leader: "Amina Njoroge", Votes: 210}}, nil
}

type memProfiles struct {
	mu sync.Mutex
	p  *models.Profile
}

func (m *memProfiles) Get(context.Context) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.p, nil
}

func (m *memProfiles) Replace(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.p = p
	return nil
}

func (m *memProfiles) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.p = nil
	return nil
}

type harness struct {
	backend *stubBackend
	tokens  *session.MemoryTokenStore
	app     *App
	out     *bytes.Buffer
}

func newHarness(t *testing.T, b *stubBackend) *harness {
	t.Helper()
	tokens := session.NewMemoryTokenStore()
	p := provider.New(provider.Deps{Client: b, Tokens: tokens, Profiles: &memProfiles{}})
	var out bytes.Buffer
	h := &harness{backend: b, tokens: tokens, out: &out}
	h.app = newApp(p, nil, strings.NewReader(""), &out)
	return h
}

// answers feeds text prompts and the password prompt from fixed lists.
func answers(t *testing.T, text []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(text) == 0 {
			t.Fatalf("unexpected prompt %q", prompt)
		}
		v := text[0]
		text = text[1:]
		return v, nil
	}
	getPassword = func(io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			t.Fatal("unexpected password prompt")
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(toString(v))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return ""
	}
}
