package users

import "context"

// Repo persists users. Create reports ErrEmailTaken or ErrUsernameTaken when
// a unique field is already in use; lookups report ErrNotFound.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
}
