package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvisionary/internal/shared/apperr"
	"cvisionary/internal/shared/metrics"
	"cvisionary/internal/shared/telemetry"
)

// UserDirectory answers whether a user id is registered.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	Repo  Repo
	Users UserDirectory
	Now   func() time.Time
}

func NewService(repo Repo, users UserDirectory) *Service {
	return &Service{Repo: repo, Users: users, Now: time.Now}
}

// Post validates and stores a job posting for an existing user.
func (s *Service) Post(ctx context.Context, in Job) (Job, error) {
	job := Job{
		UserID:         strings.TrimSpace(in.UserID),
		JobTitle:       strings.TrimSpace(in.JobTitle),
		JobDescription: strings.TrimSpace(in.JobDescription),
		CompanyName:    strings.TrimSpace(in.CompanyName),
		Location:       strings.TrimSpace(in.Location),
		Category:       in.Category,
		JobType:        strings.TrimSpace(in.JobType),
		Stipend:        strings.TrimSpace(in.Stipend),
	}
	if missing := job.missingFields(); len(missing) > 0 {
		return Job{}, apperr.Invalid("missing required fields: " + strings.Join(missing, ", "))
	}
	if job.Category == nil {
		job.Category = []string{}
	}

	ok, err := s.Users.Exists(ctx, job.UserID)
	if err != nil {
		return Job{}, fmt.Errorf("lookup user: %w", err)
	}
	if !ok {
		return Job{}, ErrUserNotFound
	}

	job.ID = uuid.NewString()
	job.CreatedAt = s.now()
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	metrics.IncJobsPosted()
	telemetry.Info("job.posted", map[string]any{"job_id": job.ID, "user_id": job.UserID})
	return job, nil
}

// ListAll returns every job newest first.
func (s *Service) ListAll(ctx context.Context) ([]Job, error) {
	return s.Repo.ListAll(ctx)
}

func (j Job) missingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"userId", j.UserID},
		{"JobTitle", j.JobTitle},
		{"JobDescription", j.JobDescription},
		{"CompanyName", j.CompanyName},
		{"Location", j.Location},
		{"JobType", j.JobType},
		{"Stipend", j.Stipend},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
