package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateMapsDuplicateReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	review := Review{ID: "r1", UserID: "u1", UserName: "Alice", ReviewText: "ok", CreatedAt: time.Now().UTC()}
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(review.ID, review.UserID, review.UserName, review.ReviewText, review.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reviews_user_id_key"})

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), review); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestPGRepoListAllUsesInsertionSequence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("ORDER BY seq ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "user_name", "review_text", "created_at"}).
			AddRow("r1", "u1", "Alice", "first", now).
			AddRow("r2", "u2", "Bob", "second", now))

	repo := &PGRepo{DB: db}
	reviews, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(reviews) != 2 || reviews[0].ID != "r1" {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
}
