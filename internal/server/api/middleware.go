package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/somapoll/internal/common"
	"github.com/dmitrijs2005/somapoll/internal/server/users"
	"github.com/dmitrijs2005/somapoll/internal/shared"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const userKey ctxKey = "user"

// tokenFromRequest prefers the bearer header and falls back to the jwt
// cookie.
func tokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get(common.AuthorizationHeaderName); h != "" {
		if !strings.HasPrefix(h, common.BearerScheme) {
			return "", shared.ErrorInvalidAuthheaderFormat
		}
		return strings.TrimSpace(strings.TrimPrefix(h, common.BearerScheme)), nil
	}
	if c, err := r.Cookie(common.SessionCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", common.ErrorUnauthorized
}

// requireUser rejects requests without a valid token with 401 and stores the
// user in the request context otherwise.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, detailBody{Detail: "Unauthenticated!"})
			return
		}
		u, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			s.logger.Debug(r.Context(), "token rejected", "error", err)
			writeJSON(w, http.StatusUnauthorized, detailBody{Detail: "Unauthenticated!"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func userFromContext(ctx context.Context) *users.User {
	u, _ := ctx.Value(userKey).(*users.User)
	return u
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}
