package resumes

import "context"

// Repo persists resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	// GetByID returns ErrResumeNotFound when no resume has the id.
	GetByID(ctx context.Context, id string) (Resume, error)
}
