// Package provider wires the session state, local stores and services into
// one object and scopes it to a context.
package provider

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/somapoll/internal/client/client"
	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/client/repositories/profile"
	"github.com/dmitrijs2005/somapoll/internal/client/services"
	"github.com/dmitrijs2005/somapoll/internal/client/session"
	"github.com/dmitrijs2005/somapoll/internal/logging"
)

// ErrNoProvider is returned when the accessor is used outside WithProvider.
var ErrNoProvider = errors.New("provider: used outside of a provider scope")

// Deps are the collaborators a Provider is built from.
type Deps struct {
	Client   client.Client
	Tokens   session.TokenStore
	Profiles profile.Repository
	Logger   logging.Logger
	// Closer, if set, is closed by Provider.Close.
	Closer io.Closer
}

// Provider owns the session state and the services that mutate it. Consumers
// read through Session and Profile and act through Auth.
type Provider struct {
	state    *session.State
	profiles profile.Repository
	auth     services.AuthService
	catalog  services.CatalogService
	closer   io.Closer

	startOnce sync.Once
}

// New builds a Provider. It is the only place session state is created.
func New(d Deps) *Provider {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	state := session.NewState()
	return &Provider{
		state:    state,
		profiles: d.Profiles,
		auth:     services.NewAuthService(d.Client, state, d.Tokens, d.Profiles, log),
		catalog:  services.NewCatalogService(d.Client),
		closer:   d.Closer,
	}
}

// Start runs the initial auth status check. Only the first call does any
// work; concurrent callers wait for it to finish.
func (p *Provider) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.auth.CheckAuthStatus(ctx)
	})
}

func (p *Provider) Session() models.Snapshot {
	return p.state.Snapshot()
}

// Profile returns the stored profile record, or nil when there is none.
func (p *Provider) Profile(ctx context.Context) (*models.Profile, error) {
	return p.profiles.Get(ctx)
}

func (p *Provider) Auth() services.AuthService {
	return p.auth
}

func (p *Provider) Catalog() services.CatalogService {
	return p.catalog
}

func (p *Provider) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

type ctxKey struct{}

// WithProvider returns a child context carrying p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the Provider scoped to ctx.
func FromContext(ctx context.Context) (*Provider, error) {
	p, ok := ctx.Value(ctxKey{}).(*Provider)
	if !ok || p == nil {
		return nil, ErrNoProvider
	}
	return p, nil
}

// MustFromContext is like FromContext but panics with ErrNoProvider.
func MustFromContext(ctx context.Context) *Provider {
	p, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return p
}
