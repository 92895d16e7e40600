package reviews

import "context"

type Repo interface {
	// Create fails with ErrAlreadyReviewed when the user has a review.
	Create(ctx context.Context, review Review) error
	// ListAll returns reviews in insertion order.
	ListAll(ctx context.Context) ([]Review, error)
}
