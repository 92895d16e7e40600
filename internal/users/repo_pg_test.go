package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateMapsUniqueViolations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := User{ID: "u1", Username: "alice", Email: "a@x.io", PasswordHash: "h", ImageURL: DefaultImageURL, CreatedAt: time.Now().UTC()}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.Email, user.PasswordHash, user.ImageURL, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	if err := repo.Create(context.Background(), user); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM users").
		WithArgs("none@x.io").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "image_url", "created_at"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByEmail(context.Background(), "none@x.io"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDSkipsNonUUID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestPGRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("ORDER BY created_at ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "image_url", "created_at"}).
			AddRow("u1", "alice", "a@x.io", "h1", DefaultImageURL, now).
			AddRow("u2", "bob", "b@x.io", "h2", DefaultImageURL, now.Add(time.Second)))

	repo := &PGRepo{DB: db}
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].Username != "alice" || got[1].Username != "bob" {
		t.Fatalf("unexpected users: %+v", got)
	}
}
