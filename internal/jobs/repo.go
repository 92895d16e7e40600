package jobs

import "context"

type Repo interface {
	Create(ctx context.Context, job Job) error
	// ListAll returns every job newest first.
	ListAll(ctx context.Context) ([]Job, error)
	// GetByID returns ErrJobNotFound when no job has the id.
	GetByID(ctx context.Context, id string) (Job, error)
}
