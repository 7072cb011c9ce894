// Package api exposes the development backend over JSON/HTTP with a chi
// router.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/somapoll/internal/logging"
	"github.com/dmitrijs2005/somapoll/internal/server/catalog"
	"github.com/dmitrijs2005/somapoll/internal/server/users"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	users   *users.Service
	catalog *catalog.Store
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, us *users.Service, cs *catalog.Store) *Server {
	if l == nil {
		l = logging.Nop()
	}
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		catalog: cs,
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/somaapp", func(r chi.Router) {
		r.With(s.requireUser).Get("/user/", s.CurrentUser)
		r.Post("/login/", s.Login)
		r.Post("/signup/", s.Signup)
		r.Post("/verify-signup/", s.VerifySignup)
		r.Post("/cleanup-signup/", s.CleanupSignup)
		r.Post("/check-existing-user/", s.CheckExistingUser)
		r.Post("/logout/", s.Logout)
		r.Post("/verify-otp/", s.VerifyOTP)
		r.Get("/get-all-candidates/", s.ListCandidates)
		r.Get("/get-all-parties/", s.ListParties)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
