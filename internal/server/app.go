// Package server wires and runs the development backend: in-memory accounts,
// the seeded catalog and the HTTP API, with graceful shutdown on signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/somapoll/internal/logging"
	"github.com/dmitrijs2005/somapoll/internal/server/api"
	"github.com/dmitrijs2005/somapoll/internal/server/catalog"
	"github.com/dmitrijs2005/somapoll/internal/server/config"
	"github.com/dmitrijs2005/somapoll/internal/server/users"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	userService    *users.Service
	catalogService *catalog.Store
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	us := users.NewService(users.NewMemoryRepository(), c, logger)

	return &App{config: c, logger: logger, userService: us, catalogService: catalog.NewSeededStore()}, nil
}

// Run serves until ctx is cancelled, SIGINT/SIGTERM/SIGQUIT arrives or the
// listener fails. The error is the listener's, never the cancellation.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "starting development backend",
		"addr", app.config.ListenAddr,
		"require_otp", app.config.RequireOTP,
		"candidates", len(app.catalogService.Candidates()),
	)

	srv := api.NewServer(app.config.ListenAddr, app.logger, app.userService, app.catalogService)
	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}
	app.logger.Info(ctx, "server stopped")
	return nil
}
