package reviews

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	reviews []Review
	byUser  map[string]struct{}
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]struct{})}
}

func (r *MemoryRepo) Create(ctx context.Context, review Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[review.UserID]; ok {
		return ErrAlreadyReviewed
	}
	r.byUser[review.UserID] = struct{}{}
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, len(r.reviews))
	copy(out, r.reviews)
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
