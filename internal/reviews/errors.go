package reviews

import "cvisionary/internal/shared/apperr"

var (
	// ErrAlreadyReviewed is returned for a second review by the same user.
	// The one-review-per-user rule comes from the store's unique index.
	ErrAlreadyReviewed = apperr.New(apperr.KindConflict, "review_exists", "User has already written a review")
	ErrNoReviews       = apperr.New(apperr.KindNotFound, "reviews_not_found", "No reviews found")
)
