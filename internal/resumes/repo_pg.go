package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. List sections are JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id, user_id, name, email, phone_number, headline, location, summary,
    skills, experience, education, projects, certifications, github, linkedin,
    last_updated, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	skills, err := marshalList(resume.Skills)
	if err != nil {
		return err
	}
	experience, err := marshalOptional(resume.Experience, resume.Experience == nil)
	if err != nil {
		return err
	}
	education, err := marshalList(resume.Education)
	if err != nil {
		return err
	}
	projects, err := marshalList(resume.Projects)
	if err != nil {
		return err
	}
	certifications, err := marshalList(resume.Certifications)
	if err != nil {
		return err
	}
	github, err := marshalOptional(resume.GitHub, resume.GitHub == nil)
	if err != nil {
		return err
	}
	linkedin, err := marshalOptional(resume.LinkedIn, resume.LinkedIn == nil)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Name,
		resume.Email,
		resume.PhoneNumber,
		resume.Headline,
		resume.Location,
		resume.Summary,
		skills,
		experience,
		education,
		projects,
		certifications,
		github,
		linkedin,
		resume.LastUpdated,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

const selectResumes = `
SELECT id, user_id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(phone_number, ''),
       COALESCE(headline, ''), COALESCE(location, ''), COALESCE(summary, ''),
       skills, experience, education, projects, certifications, github, linkedin,
       last_updated, created_at, updated_at
FROM resumes`

// ListByUser returns the user's resumes newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, selectResumes+`
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	resume, err := scanResume(r.DB.QueryRowContext(ctx, selectResumes+`
WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrResumeNotFound
	}
	return resume, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume                             Resume
		skills, education, projects, certs []byte
		experience, github, linkedin       []byte
	)
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Name,
		&resume.Email,
		&resume.PhoneNumber,
		&resume.Headline,
		&resume.Location,
		&resume.Summary,
		&skills,
		&experience,
		&education,
		&projects,
		&certs,
		&github,
		&linkedin,
		&resume.LastUpdated,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	if err := unmarshalColumns(map[string]columnTarget{
		"skills":         {skills, &resume.Skills},
		"experience":     {experience, &resume.Experience},
		"education":      {education, &resume.Education},
		"projects":       {projects, &resume.Projects},
		"certifications": {certs, &resume.Certifications},
		"github":         {github, &resume.GitHub},
		"linkedin":       {linkedin, &resume.LinkedIn},
	}); err != nil {
		return Resume{}, fmt.Errorf("resume %s: %w", resume.ID, err)
	}
	return resume, nil
}

type columnTarget struct {
	raw  []byte
	dest any
}

func unmarshalColumns(cols map[string]columnTarget) error {
	for name, col := range cols {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
	}
	return nil
}

// marshalList encodes a list section, storing nil as an empty array.
func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func marshalOptional(value any, isNil bool) (any, error) {
	if isNil {
		return nil, nil
	}
	return json.Marshal(value)
}

var _ Repo = (*PGRepo)(nil)
