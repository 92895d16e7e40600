package reviews

import (
	"context"
	"database/sql"

	"cvisionary/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, review Review) error {
	const query = `
INSERT INTO reviews (id, user_id, user_name, review_text, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		review.ID,
		review.UserID,
		review.UserName,
		review.ReviewText,
		review.CreatedAt,
	)
	if db.IsUniqueViolation(err, "reviews_user_id_key") {
		return ErrAlreadyReviewed
	}
	return err
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Review, error) {
	const query = `
SELECT id, user_id, user_name, review_text, created_at
FROM reviews
ORDER BY seq ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var review Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.UserName,
			&review.ReviewText,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
