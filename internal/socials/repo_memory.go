package socials

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	conns map[string]Connection
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{conns: make(map[string]Connection)}
}

func connKey(userID, provider string) string {
	return userID + "\x00" + provider
}

func (r *MemoryRepo) Upsert(ctx context.Context, conn Connection) (Connection, error) {
	if err := ctx.Err(); err != nil {
		return Connection{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := connKey(conn.UserID, conn.Provider)
	if existing, ok := r.conns[key]; ok {
		conn.ID = existing.ID
		conn.CreatedAt = existing.CreatedAt
	}
	r.conns[key] = conn
	return conn, nil
}

func (r *MemoryRepo) MergeScrapedData(ctx context.Context, conn Connection) (Connection, error) {
	if err := ctx.Err(); err != nil {
		return Connection{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := connKey(conn.UserID, conn.Provider)
	existing, ok := r.conns[key]
	if !ok {
		r.conns[key] = conn
		return conn, nil
	}
	merged := make(map[string]any, len(existing.ScrapedData)+len(conn.ScrapedData))
	for k, v := range existing.ScrapedData {
		merged[k] = v
	}
	for k, v := range conn.ScrapedData {
		merged[k] = v
	}
	existing.ScrapedData = merged
	existing.ProviderID = conn.ProviderID
	existing.UpdatedAt = conn.UpdatedAt
	r.conns[key] = existing
	return existing, nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID, provider string) (Connection, error) {
	if err := ctx.Err(); err != nil {
		return Connection{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[connKey(userID, provider)]
	if !ok {
		return Connection{}, ErrNotFound
	}
	return conn, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []Connection{}
	for _, conn := range r.conns {
		if conn.UserID == userID {
			out = append(out, conn)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
