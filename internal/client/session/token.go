// Package session holds the client's local view of who is signed in: the
// optional bearer token slot and the in-memory authentication state.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/somapoll/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/somapoll/internal/common"
)

// TokenStore is the durable slot for the bearer token.
//
// A missing token does not mean the user is signed out (the cookie session
// may still be valid), and a present one is not known to be valid.
type TokenStore interface {
	Get(ctx context.Context) (token string, found bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MetadataTokenStore keeps the token in the metadata table under
// common.TokenMetadataKey.
type MetadataTokenStore struct {
	repo metadata.Repository
}

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{repo: repo}
}

func (s *MetadataTokenStore) Get(ctx context.Context) (string, bool, error) {
	v, found, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if err != nil || !found {
		return "", false, err
	}
	return string(v), true, nil
}

func (s *MetadataTokenStore) Set(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenMetadataKey, []byte(token))
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenMetadataKey)
}

// MemoryTokenStore is a TokenStore that lives only as long as the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get(context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.set = token, true
	return nil
}

func (s *MemoryTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.set = "", false
	return nil
}
