package users

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu         sync.RWMutex
	byID       map[string]User
	byEmail    map[string]string
	byUsername map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:       make(map[string]User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return ErrEmailTaken
	}
	if _, ok := r.byUsername[user.Username]; ok {
		return ErrUsernameTaken
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	r.byUsername[user.Username] = user.ID
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.lookup(ctx, r.byEmail, email)
}

func (r *MemoryRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	return r.lookup(ctx, r.byUsername, username)
}

func (r *MemoryRepo) lookup(ctx context.Context, index map[string]string, key string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := index[key]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

// List returns users oldest first.
func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]User, 0, len(r.byID))
	for _, user := range r.byID {
		out = append(out, user)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
