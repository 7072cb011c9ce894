package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/somapoll/internal/client/config"
	"github.com/dmitrijs2005/somapoll/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Get(context.Context) (string, bool, error) {
	return s.token, s.token != "", s.err
}

// newTestServer creates a test server and client for testing.
func newTestServer(t *testing.T, handler http.HandlerFunc, opts ...Option) (*httptest.Server, *HTTPClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewHTTPClient(server.URL, opts...)
	require.NoError(t, err)
	return server, c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("localhost:8000")
	require.Error(t, err)

	_, err = NewHTTPClient("://nope")
	require.Error(t, err)
}

func TestNewHTTPClient_Options(t *testing.T) {
	hc := &http.Client{}
	c, err := NewHTTPClient("http://api.test", WithHTTPClient(hc), WithTimeout(5*time.Second), WithUserAgent("ua/1"))
	require.NoError(t, err)

	assert.Same(t, hc, c.httpClient)
	assert.NotNil(t, hc.Jar, "jar must be carried over")
	assert.Equal(t, 5*time.Second, hc.Timeout)
	assert.Equal(t, "ua/1", c.userAgent)
	assert.Equal(t, "http://api.test", c.BaseURL())
}

func TestCurrentUser_SendsBearerAndRequestID(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/somaapp/user/", r.URL.Path)
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(common.RequestIDHeaderName))
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 7, "username": "student", "email": "student@gmail.com",
			"bio": nil, "structure": 42, "is_email_verified": true,
		})
	}, WithTokenSource(staticTokens{token: "abc123"}))

	u, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, u.ID)
	assert.Equal(t, int64(7), *u.ID)
	assert.Equal(t, Text("student"), u.Username)
	assert.Equal(t, Text(""), u.Bio)
	assert.Equal(t, Text(""), u.Structure, "non-string structure is dropped")
	require.NotNil(t, u.IsEmailVerified)
	assert.True(t, *u.IsEmailVerified)
}

func TestCurrentUser_NoTokenNoHeader(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"username": "u"})
	}, WithTokenSource(staticTokens{}))

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
}

func TestCurrentUser_TokenStoreErrorStillSendsRequest(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"username": "u"})
	}, WithTokenSource(staticTokens{err: errors.New("disk gone")}))

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
}

func TestCurrentUser_ErrorClassification(t *testing.T) {
	t.Run("401 is unauthorized api error", func(t *testing.T) {
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Unauthenticated!"})
		})
		_, err := c.CurrentUser(context.Background())
		require.ErrorIs(t, err, ErrUnauthorized)
		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Unauthenticated!", apiErr.Message)
	})

	t.Run("2xx without username is semantic", func(t *testing.T) {
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"id": 1})
		})
		_, err := c.CurrentUser(context.Background())
		require.ErrorIs(t, err, ErrSemantic)
	})

	t.Run("2xx with garbage body is semantic", func(t *testing.T) {
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		})
		_, err := c.CurrentUser(context.Background())
		require.ErrorIs(t, err, ErrSemantic)
	})

	t.Run("closed server is transport", func(t *testing.T) {
		srv, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()
		_, err := c.CurrentUser(context.Background())
		require.ErrorIs(t, err, ErrUnavailable)
		assert.True(t, IsTransport(err))
	})
}

func TestLogin_CookiesAreKeptForLaterRequests(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/somaapp/login/":
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, LoginRequest{Email: "student@gmail.com", Password: "secret1"}, req)
			http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "cookie-token", Path: "/"})
			writeJSON(w, http.StatusOK, map[string]any{"username": "student", "jwt": "abc123"})
		case "/somaapp/user/":
			ck, err := r.Cookie("jwt")
			require.NoError(t, err)
			assert.Equal(t, "cookie-token", ck.Value)
			writeJSON(w, http.StatusOK, map[string]any{"username": "student"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	resp, err := c.Login(context.Background(), LoginRequest{Email: "student@gmail.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, Text("abc123"), resp.JWT)

	_, err = c.CurrentUser(context.Background())
	require.NoError(t, err)
}

func TestLogin_MissingUsernameIsSemanticWithServerMessage(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"error": "Account locked"})
	})

	resp, err := c.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "p"})
	require.ErrorIs(t, err, ErrSemantic)
	require.NotNil(t, resp)
	semErr, ok := AsSemanticError(err)
	require.True(t, ok)
	assert.Equal(t, "Account locked", semErr.ServerMessage)
}

func TestLogin_OTPChallengeIsValid(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"otp_required": true, "email": "a@b.c"})
	})

	resp, err := c.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "p"})
	require.NoError(t, err)
	assert.True(t, resp.OTPRequired)
}

func TestCheckExistingUser_ParsesErrorList(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"errors": []string{"username taken"}})
	})

	_, err := c.CheckExistingUser(context.Background(), "student", "student@gmail.com")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"username taken"}, apiErr.Errors)
	assert.False(t, apiErr.BodyUnparsed)
	assert.Contains(t, apiErr.Error(), "username taken")
}

func TestCheckExistingUser_UnparsableErrorBody(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error"))
	})

	_, err := c.CheckExistingUser(context.Background(), "u", "e")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.BodyUnparsed)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestSignupVerifyCleanup_PostEmail(t *testing.T) {
	var paths []string
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s@x.io", body["email"])
		if r.URL.Path == "/somaapp/signup/" {
			assert.Equal(t, "Stu", body["full_name"])
			_, hasStructure := body["structure"]
			assert.False(t, hasStructure, "empty optional fields are omitted")
			writeJSON(w, http.StatusCreated, map[string]any{"username": "s"})
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()
	_, err := c.Signup(ctx, SignupRequest{Username: "s", Email: "s@x.io", Password: "p", FullName: "Stu"})
	require.NoError(t, err)
	require.NoError(t, c.VerifySignup(ctx, "s@x.io"))
	require.NoError(t, c.CleanupSignup(ctx, "s@x.io"))
	assert.Equal(t, []string{"/somaapp/signup/", "/somaapp/verify-signup/", "/somaapp/cleanup-signup/"}, paths)
}

func TestLogout_NonJSONBodyIgnored(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte("bye"))
	})
	require.NoError(t, c.Logout(context.Background()))
}

func TestResendOTP_RequiresMessage(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["resend"])
		writeJSON(w, http.StatusOK, map[string]any{})
	})

	_, err := c.ResendOTP(context.Background(), "a@b.c")
	require.ErrorIs(t, err, ErrSemantic)
}

func TestListParties_RequiresArray(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"parties": map[string]any{}})
	})

	_, err := c.ListParties(context.Background())
	require.ErrorIs(t, err, ErrSemantic)
}

func TestListCandidatesAndParties(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/candidates":
			writeJSON(w, http.StatusOK, map[string]any{"candidates": []map[string]any{{"id": 1, "candidate_name": "Ada", "votes": 3}}, "count": 1})
		case "/api/parties":
			writeJSON(w, http.StatusOK, map[string]any{"parties": []map[string]any{{"id": 2, "party_name": "Blue"}}, "count": 1})
		}
	}, WithEndpoints(func() config.Endpoints {
		e := config.DefaultEndpoints()
		e.Candidates = "/api/candidates"
		e.Parties = "/api/parties"
		return e
	}()))

	cands, err := c.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "Ada", cands[0].Name)
	assert.Equal(t, int64(3), cands[0].Votes)

	parties, err := c.ListParties(context.Background())
	require.NoError(t, err)
	require.Len(t, parties, 1)
	assert.Equal(t, "Blue", parties[0].Name)
}

func TestAPIError_ErrorString(t *testing.T) {
	err := parseAPIError("login", http.StatusBadRequest, []byte(`{"error":"Invalid credentials"}`))
	assert.Equal(t, "login: http 400: Invalid credentials", err.Error())

	err = parseAPIError("logout", http.StatusBadGateway, []byte(`oops`))
	assert.Equal(t, "logout: http 502: Bad Gateway", err.Error())
}
