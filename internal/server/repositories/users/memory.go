package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

// MemoryRepository keeps identity records in process memory. Records are
// copied in and out so callers never share state with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrDuplicateIdentity
	}
	r.users[user.Email] = *user

	out := *user
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate, now time.Time) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	upd.Apply(&u, now)
	r.users[email] = u

	return &u, nil
}
