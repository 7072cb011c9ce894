package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/somapoll/internal/common"
)

// MemoryRepository keeps users in process memory. Returned users are copies.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, byID: make(map[int64]*User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, e := r.existsLocked(user.Username, user.Email); u || e {
		return nil, common.ErrUserExists
	}

	u := *user
	u.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	r.byID[u.ID] = &u

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u := r.findByEmailLocked(email)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) Exists(_ context.Context, username, email string) (bool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, e := r.existsLocked(username, email)
	return u, e, nil
}

func (r *MemoryRepository) Update(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return common.ErrorNotFound
	}
	u := *user
	u.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = &u
	return nil
}

func (r *MemoryRepository) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.findByEmailLocked(email)
	if u == nil {
		return common.ErrorNotFound
	}
	delete(r.byID, u.ID)
	return nil
}

func (r *MemoryRepository) findByEmailLocked(email string) *User {
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (r *MemoryRepository) existsLocked(username, email string) (usernameTaken, emailTaken bool) {
	for _, u := range r.byID {
		if username != "" && strings.EqualFold(u.Username, username) {
			usernameTaken = true
		}
		if email != "" && strings.EqualFold(u.Email, email) {
			emailTaken = true
		}
	}
	return usernameTaken, emailTaken
}
