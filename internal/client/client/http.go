package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dmitrijs2005/somapoll/internal/client/config"
	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/common"
	"github.com/dmitrijs2005/somapoll/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const (
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"
	contentTypeJSON   = "application/json"
	defaultUserAgent  = "somapoll-cli/1.0"
	DefaultTimeout    = 30 * time.Second
)

// HTTPClient talks JSON to the backend. Cookies persist in an in-memory jar
// for the lifetime of the client, and the token from TokenSource (if any) is
// sent as a bearer credential on every request.
type HTTPClient struct {
	baseURL    string
	endpoints  config.Endpoints
	httpClient *http.Client
	tokens     TokenSource
	log        logging.Logger
	userAgent  string
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client. Its Jar is kept if set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc.Jar == nil {
			hc.Jar = c.httpClient.Jar
		}
		c.httpClient = hc
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

func WithEndpoints(e config.Endpoints) Option {
	return func(c *HTTPClient) {
		c.endpoints = e
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) {
		c.tokens = ts
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// NewHTTPClient builds a client for the backend at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &HTTPClient{
		baseURL:    baseURL,
		endpoints:  config.DefaultEndpoints(),
		httpClient: &http.Client{Jar: jar, Timeout: DefaultTimeout},
		log:        logging.Nop(),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// doRequest performs one JSON request. Non-2xx responses become *APIError,
// network failures *TransportError, undecodable 2xx bodies *SemanticError.
func (c *HTTPClient) doRequest(ctx context.Context, op, method, path string, body any, result any) error {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("%s: failed to build URL: %w", op, err)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(headerUserAgent, c.userAgent)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if err := c.attachToken(ctx, req); err != nil {
		c.log.Warn(ctx, "token store read failed, sending request without bearer", "op", op, "error", err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "op", op, "request_id", requestID, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.log.Debug(ctx, "request finished", "op", op, "request_id", requestID,
		"status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(op, resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &SemanticError{Op: op, Field: "body", Err: err}
		}
	}
	return nil
}

func (c *HTTPClient) attachToken(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, found, err := c.tokens.Get(ctx)
	if err != nil {
		return err
	}
	if found && token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, op, path string, result any) error {
	return c.doRequest(ctx, op, http.MethodGet, path, nil, result)
}

func (c *HTTPClient) post(ctx context.Context, op, path string, body any, result any) error {
	return c.doRequest(ctx, op, http.MethodPost, path, body, result)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*User, error) {
	const op = "current-user"
	var u User
	if err := c.get(ctx, op, c.endpoints.CurrentUser, &u); err != nil {
		return nil, err
	}
	if u.Username == "" {
		return nil, &SemanticError{Op: op, Field: "username"}
	}
	return &u, nil
}

// Login returns a *SemanticError (with the response) when the body carries
// neither a username nor an OTP challenge.
func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	const op = "login"
	var resp LoginResponse
	if err := c.post(ctx, op, c.endpoints.Login, req, &resp); err != nil {
		return nil, err
	}
	if resp.Username == "" && !resp.OTPRequired {
		return &resp, &SemanticError{Op: op, Field: "username", ServerMessage: string(resp.Error)}
	}
	return &resp, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	const op = "signup"
	var resp SignupResponse
	if err := c.post(ctx, op, c.endpoints.Signup, req, &resp); err != nil {
		return nil, err
	}
	if resp.Username == "" {
		return &resp, &SemanticError{Op: op, Field: "username", ServerMessage: string(resp.Error)}
	}
	return &resp, nil
}

func (c *HTTPClient) VerifySignup(ctx context.Context, email string) error {
	return c.post(ctx, "verify-signup", c.endpoints.VerifySignup, emailRequest{Email: email}, nil)
}

func (c *HTTPClient) CleanupSignup(ctx context.Context, email string) error {
	return c.post(ctx, "cleanup-signup", c.endpoints.CleanupSignup, emailRequest{Email: email}, nil)
}

func (c *HTTPClient) CheckExistingUser(ctx context.Context, username, email string) (*MessageResponse, error) {
	var resp MessageResponse
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}{Username: username, Email: email}
	if err := c.post(ctx, "check-existing-user", c.endpoints.CheckExistingUser, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout discards the response body; only transport and status matter.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.post(ctx, "logout", c.endpoints.Logout, nil, nil)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, "verify-otp", c.endpoints.VerifyOTP, otpRequest{Email: email, OTPCode: code}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResendOTP re-posts to the signup endpoint with the resend flag. A success
// response must carry a message.
func (c *HTTPClient) ResendOTP(ctx context.Context, email string) (*MessageResponse, error) {
	const op = "resend-otp"
	var resp MessageResponse
	if err := c.post(ctx, op, c.endpoints.Signup, SignupRequest{Email: email, Resend: true}, &resp); err != nil {
		return nil, err
	}
	if resp.Message == "" {
		return &resp, &SemanticError{Op: op, Field: "message", ServerMessage: string(resp.Error)}
	}
	return &resp, nil
}

func (c *HTTPClient) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	var resp candidatesResponse
	if err := c.get(ctx, "list-candidates", c.endpoints.Candidates, &resp); err != nil {
		return nil, err
	}
	return resp.Candidates, nil
}

func (c *HTTPClient) ListParties(ctx context.Context) ([]models.Party, error) {
	const op = "list-parties"
	var resp partiesResponse
	if err := c.get(ctx, op, c.endpoints.Parties, &resp); err != nil {
		return nil, err
	}
	if !isJSONArray(resp.Parties) {
		return nil, &SemanticError{Op: op, Field: "parties"}
	}
	var parties []models.Party
	if err := json.Unmarshal(resp.Parties, &parties); err != nil {
		return nil, &SemanticError{Op: op, Field: "parties", Err: err}
	}
	return parties, nil
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
