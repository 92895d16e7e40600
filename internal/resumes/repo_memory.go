package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps resumes in process memory.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes []Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.resumes = append(r.resumes, resume)
	r.mu.Unlock()
	return nil
}

// ListByUser returns the user's resumes newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []Resume{}
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, resume := range r.resumes {
		if resume.ID == id {
			return resume, nil
		}
	}
	return Resume{}, ErrResumeNotFound
}

var _ Repo = (*MemoryRepo)(nil)
