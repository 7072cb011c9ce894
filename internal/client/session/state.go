package session

import (
	"sync"

	"github.com/dmitrijs2005/somapoll/internal/client/models"
)

// State is the process-wide authentication state. Readers take a Snapshot;
// only the auth service mutates it.
//
// IsAuthenticated is never true without a username: Authenticate requires
// one and Reset clears both together.
type State struct {
	mu            sync.RWMutex
	authenticated bool
	emailVerified bool
	username      string
	loading       bool
}

func NewState() *State {
	return &State{}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		IsAuthenticated: s.authenticated,
		EmailVerified:   s.emailVerified,
		Loading:         s.loading,
	}
	if s.authenticated {
		u := s.username
		snap.Username = &u
	}
	return snap
}

// Authenticate marks the session as signed in. An empty username resets the
// state instead, and false is returned.
func (s *State) Authenticate(username string, emailVerified bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" {
		s.authenticated, s.emailVerified, s.username = false, false, ""
		return false
	}
	s.authenticated, s.emailVerified, s.username = true, emailVerified, username
	return true
}

// Reset returns to the signed-out state. Loading is left untouched.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated, s.emailVerified, s.username = false, false, ""
}

func (s *State) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
