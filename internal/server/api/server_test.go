package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/somapoll/internal/common"
	"github.com/dmitrijs2005/somapoll/internal/server/catalog"
	"github.com/dmitrijs2005/somapoll/internal/server/config"
	"github.com/dmitrijs2005/somapoll/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users   *users.Service
	handler http.Handler
}

func newEnv(t *testing.T, requireOTP bool) *testEnv {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.RequireOTP = requireOTP
	us := users.NewService(users.NewMemoryRepository(), cfg, nil)
	srv := NewServer(cfg.ListenAddr, nil, us, catalog.NewSeededStore())
	return &testEnv{users: us, handler: srv.Handler()}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mods {
		m(req)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token) }
}

var student = map[string]any{
	"username":  "student",
	"email":     "student@gmail.com",
	"password":  "secret1",
	"full_name": "Student One",
}

func (e *testEnv) registerVerified(t *testing.T) {
	t.Helper()
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/somaapp/signup/", student).Code)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/somaapp/verify-signup/", map[string]string{"email": "student@gmail.com"}).Code)
}

func TestSignupLoginCurrentUser(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodPost, "/somaapp/signup/", student)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "student", decodeBody(t, rec)["username"])

	rec = e.do(t, http.MethodPost, "/somaapp/login/", map[string]string{"email": "student@gmail.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, rec.Code, "unverified registration")

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/somaapp/verify-signup/", map[string]string{"email": "student@gmail.com"}).Code)

	rec = e.do(t, http.MethodPost, "/somaapp/login/", map[string]string{"email": "student@gmail.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "student", body["username"])
	token, _ := body["jwt"].(string)
	require.NotEmpty(t, token)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	rec = e.do(t, http.MethodGet, "/somaapp/user/", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody(t, rec)
	assert.Equal(t, "student", me["username"])
	assert.Equal(t, "Student One", me["full_name"])
	assert.Equal(t, true, me["is_email_verified"])
	assert.Nil(t, me["profile_picture"])

	rec = e.do(t, http.MethodGet, "/somaapp/user/", nil, func(r *http.Request) { r.AddCookie(cookie) })
	assert.Equal(t, http.StatusOK, rec.Code, "cookie authenticates too")
}

func TestCurrentUser_Unauthenticated(t *testing.T) {
	e := newEnv(t, false)

	for name, mod := range map[string]func(*http.Request){
		"no token":   func(*http.Request) {},
		"bad token":  bearer("garbage"),
		"bad scheme": func(r *http.Request) { r.Header.Set(common.AuthorizationHeaderName, "Basic abc") },
	} {
		t.Run(name, func(t *testing.T) {
			rec := e.do(t, http.MethodGet, "/somaapp/user/", nil, mod)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Unauthenticated!", decodeBody(t, rec)["detail"])
		})
	}
}

func TestLogin_Errors(t *testing.T) {
	e := newEnv(t, false)
	e.registerVerified(t)

	rec := e.do(t, http.MethodPost, "/somaapp/login/", map[string]string{"email": "student@gmail.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["error"])

	e.users.Faults.FailLogin.Store(true)
	rec = e.do(t, http.MethodPost, "/somaapp/login/", map[string]string{"email": "student@gmail.com", "password": "secret1"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = e.do(t, http.MethodPost, "/somaapp/login/", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_Errors(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodPost, "/somaapp/signup/", map[string]string{"username": "x", "email": "bad"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/somaapp/signup/", student).Code)
	rec = e.do(t, http.MethodPost, "/somaapp/signup/", student)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVerifyAndCleanupSignup(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodPost, "/somaapp/verify-signup/", map[string]string{"email": "nobody@gmail.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/somaapp/signup/", student).Code)

	e.users.Faults.FailVerifySignup.Store(true)
	rec = e.do(t, http.MethodPost, "/somaapp/verify-signup/", map[string]string{"email": "student@gmail.com"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	for i := 0; i < 2; i++ {
		rec = e.do(t, http.MethodPost, "/somaapp/cleanup-signup/", map[string]string{"email": "student@gmail.com"})
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec = e.do(t, http.MethodPost, "/somaapp/check-existing-user/", map[string]string{"username": "student", "email": "student@gmail.com"})
	assert.Equal(t, http.StatusOK, rec.Code, "account is gone")
}

func TestCheckExistingUser(t *testing.T) {
	e := newEnv(t, false)
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/somaapp/signup/", student).Code)

	rec := e.do(t, http.MethodPost, "/somaapp/check-existing-user/", map[string]string{"username": "student", "email": "student@gmail.com"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, []any{"Username already taken", "Email already registered"}, decodeBody(t, rec)["errors"])

	rec = e.do(t, http.MethodPost, "/somaapp/check-existing-user/", map[string]string{"username": "fresh", "email": "fresh@gmail.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["message"])
}

func TestLogoutClearsCookie(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodPost, "/somaapp/logout/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, common.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestOTPFlow(t *testing.T) {
	e := newEnv(t, true)
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/somaapp/signup/", student).Code)

	rec := e.do(t, http.MethodPost, "/somaapp/login/", map[string]string{"email": "student@gmail.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["otp_required"])
	assert.Equal(t, "student@gmail.com", body["email"])
	assert.Nil(t, body["jwt"])

	rec = e.do(t, http.MethodPost, "/somaapp/signup/", map[string]any{"email": "student@gmail.com", "resend": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["message"])

	rec = e.do(t, http.MethodPost, "/somaapp/verify-otp/", map[string]string{"email": "student@gmail.com", "otp_code": "000000x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP", decodeBody(t, rec)["error"])

	code, ok := e.users.PendingOTP("student@gmail.com")
	require.True(t, ok)
	rec = e.do(t, http.MethodPost, "/somaapp/verify-otp/", map[string]string{"email": "student@gmail.com", "otp_code": code})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decodeBody(t, rec)["jwt"].(string)
	require.NotEmpty(t, token)

	rec = e.do(t, http.MethodGet, "/somaapp/user/", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["is_email_verified"])

	rec = e.do(t, http.MethodPost, "/somaapp/signup/", map[string]any{"email": "student@gmail.com", "resend": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "nothing left to resend")
}

func TestCatalogListings(t *testing.T) {
	e := newEnv(t, false)

	rec := e.do(t, http.MethodGet, "/somaapp/get-all-candidates/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cands candidatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cands))
	assert.Equal(t, 3, cands.Count)
	assert.Len(t, cands.Candidates, 3)

	rec = e.do(t, http.MethodGet, "/somaapp/get-all-parties/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var parties partiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parties))
	assert.Equal(t, 2, parties.Count)
}

func TestCatalogListings_EmptyIsArray(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	srv := NewServer(cfg.ListenAddr, nil, users.NewService(users.NewMemoryRepository(), cfg, nil), catalog.NewStore(nil, nil))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/somaapp/get-all-parties/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"parties":[]`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	srv := NewServer("127.0.0.1:0", nil, users.NewService(users.NewMemoryRepository(), cfg, nil), catalog.NewSeededStore())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
