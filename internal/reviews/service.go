package reviews

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"cvisionary/internal/shared/apperr"
	"cvisionary/internal/shared/metrics"
	"cvisionary/internal/shared/telemetry"
)

const maxCleanPasses = 8

type Service struct {
	Repo     Repo
	Now      func() time.Time
	sanitize *bluemonday.Policy
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now, sanitize: bluemonday.StrictPolicy()}
}

// Write stores a review. Markup in the text is stripped before storage.
func (s *Service) Write(ctx context.Context, userID, userName, text string) (Review, error) {
	review := Review{
		UserID:     strings.TrimSpace(userID),
		UserName:   strings.TrimSpace(userName),
		ReviewText: s.clean(text),
	}
	if review.UserID == "" || review.UserName == "" || review.ReviewText == "" {
		return Review{}, apperr.Invalid("userId, UserName and reviewText are required")
	}
	review.ID = uuid.NewString()
	review.CreatedAt = s.now()

	if err := s.Repo.Create(ctx, review); err != nil {
		return Review{}, err
	}
	metrics.IncReviewsWritten()
	telemetry.Info("review.written", map[string]any{"review_id": review.ID, "user_id": review.UserID})
	return review, nil
}

// ListAll returns reviews in insertion order, or ErrNoReviews.
func (s *Service) ListAll(ctx context.Context) ([]Review, error) {
	reviews, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrNoReviews
	}
	return reviews, nil
}

// clean reduces text to what a reader sees. The policy escapes the text it
// keeps, so each pass is unescaped and the loop runs until a pass changes
// nothing; entity-encoded tags are decoded and stripped as well.
func (s *Service) clean(text string) string {
	p := s.sanitize
	if p == nil {
		p = bluemonday.StrictPolicy()
	}
	out := text
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(p.Sanitize(out))
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(out)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
