// Package profile persists the single local Profile Record.
package profile

import (
	"context"

	"github.com/dmitrijs2005/somapoll/internal/client/models"
)

// Repository stores at most one profile. Replace swaps the whole record;
// Get returns (nil, nil) when nothing is stored.
type Repository interface {
	Get(ctx context.Context) (*models.Profile, error)
	Replace(ctx context.Context, p *models.Profile) error
	Clear(ctx context.Context) error
}
