package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateEncodesSections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	resume := Resume{
		ID:         "r1",
		UserID:     "u1",
		Name:       "Alice",
		Skills:     []string{"go"},
		Experience: FresherRole(),
		CreatedAt:  now, UpdatedAt: now, LastUpdated: now,
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			"r1", "u1", "Alice", "", "", "", "", "",
			[]byte(`["go"]`),
			sqlmock.AnyArg(), // experience
			[]byte(`[]`),
			[]byte(`[]`),
			[]byte(`[]`),
			nil, // github
			nil, // linkedin
			now, now, now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUserDecodesSections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "email", "phone_number", "headline", "location", "summary",
		"skills", "experience", "education", "projects", "certifications", "github", "linkedin",
		"last_updated", "created_at", "updated_at",
	}).AddRow(
		"r1", "u1", "Alice", "", "", "", "", "",
		[]byte(`["go"]`),
		[]byte(`{"jobTitle":"Fresher","companyName":"N/A"}`),
		[]byte(`[{"institutionName":"MIT"}]`),
		[]byte(`[]`),
		[]byte(`[{"certificationName":null}]`),
		nil,
		[]byte(`{"profileUrl":"x","connections":3}`),
		now, now, now,
	)
	mock.ExpectQuery("FROM resumes").WithArgs("u1").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	got, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 resume, got %d", len(got))
	}
	r := got[0]
	if r.Experience == nil || r.Experience.JobTitle != "Fresher" {
		t.Fatalf("experience not decoded: %+v", r.Experience)
	}
	if len(r.Education) != 1 || r.Education[0].InstitutionName != "MIT" {
		t.Fatalf("education not decoded: %+v", r.Education)
	}
	if r.GitHub != nil {
		t.Fatalf("expected nil github, got %+v", r.GitHub)
	}
	if r.LinkedIn == nil || r.LinkedIn.Connections != 3 {
		t.Fatalf("linkedin not decoded: %+v", r.LinkedIn)
	}
	if r.Certifications[0].CertificationName != nil {
		t.Fatalf("expected null certification name")
	}
}

func TestPGRepoGetByIDMapsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("WHERE id = \\$1").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
}
