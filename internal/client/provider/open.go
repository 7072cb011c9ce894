package provider

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/somapoll/internal/client/client"
	"github.com/dmitrijs2005/somapoll/internal/client/config"
	"github.com/dmitrijs2005/somapoll/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/somapoll/internal/client/repositories/profile"
	"github.com/dmitrijs2005/somapoll/internal/client/session"
	"github.com/dmitrijs2005/somapoll/internal/filex"
	"github.com/dmitrijs2005/somapoll/internal/logging"
)

// Open builds a Provider from configuration: it opens and migrates the local
// database, then connects the HTTP client to the durable token slot.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*Provider, error) {
	if log == nil {
		log = logging.Nop()
	}

	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
	}

	tokens := session.NewMetadataTokenStore(metadata.NewSQLiteRepository(db))

	c, err := client.NewHTTPClient(cfg.BackendURL,
		client.WithEndpoints(cfg.Endpoints),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithTokenSource(tokens),
		client.WithLogger(log.With("component", "http")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(Deps{
		Client:   c,
		Tokens:   tokens,
		Profiles: profile.NewSQLiteRepository(db),
		Logger:   log,
		Closer:   db,
	}), nil
}
