package jobs

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	jobs []Job
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.jobs = append(r.jobs, job)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].newerThan(out[j]) })
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return Job{}, ErrJobNotFound
}

var _ Repo = (*MemoryRepo)(nil)
