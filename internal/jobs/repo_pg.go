package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cvisionary/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, user_id, job_title, job_description, company_name, location, category, job_type, stipend, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	category := job.Category
	if category == nil {
		category = []string{}
	}
	categoryJSON, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("encode category: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.UserID,
		job.JobTitle,
		job.JobDescription,
		job.CompanyName,
		job.Location,
		categoryJSON,
		job.JobType,
		job.Stipend,
		job.CreatedAt,
	)
	if db.IsForeignKeyViolation(err) {
		return ErrUserNotFound
	}
	return err
}

const selectJobs = `
SELECT id, user_id, job_title, job_description, company_name, location, category, job_type, stipend, created_at
FROM jobs`

func (r *PGRepo) ListAll(ctx context.Context) ([]Job, error) {
	rows, err := r.DB.QueryContext(ctx, selectJobs+`
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Job, error) {
	job, err := scanJob(r.DB.QueryRowContext(ctx, selectJobs+`
WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrJobNotFound
	}
	return job, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var (
		job      Job
		category []byte
	)
	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.JobTitle,
		&job.JobDescription,
		&job.CompanyName,
		&job.Location,
		&category,
		&job.JobType,
		&job.Stipend,
		&job.CreatedAt,
	); err != nil {
		return Job{}, err
	}
	job.Category = []string{}
	if len(category) > 0 {
		if err := json.Unmarshal(category, &job.Category); err != nil {
			return Job{}, fmt.Errorf("decode category for job %s: %w", job.ID, err)
		}
	}
	return job, nil
}

var _ Repo = (*PGRepo)(nil)
