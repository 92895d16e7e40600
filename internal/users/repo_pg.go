package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"cvisionary/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectUser = `
SELECT id, username, email, password_hash, image_url, created_at
FROM users`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, email, password_hash, image_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ImageURL,
		user.CreatedAt,
	)
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err, "users_email_key"):
		return ErrEmailTaken
	case db.IsUniqueViolation(err, "users_username_key"):
		return ErrUsernameTaken
	default:
		return err
	}
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	// ids are uuids; anything else cannot match and would fail the cast
	if _, err := uuid.Parse(userID); err != nil {
		return User{}, ErrNotFound
	}
	return r.getOne(ctx, selectUser+"\nWHERE id = $1\nLIMIT 1", userID)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, selectUser+"\nWHERE email = $1\nLIMIT 1", email)
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	return r.getOne(ctx, selectUser+"\nWHERE username = $1\nLIMIT 1", username)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg string) (User, error) {
	var user User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.ImageURL,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx, selectUser+"\nORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.ImageURL,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
