package resumes

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

// Build stores a new resume for an existing user. The owner reference and
// list sections are stored as given; only the current role is normalized.
func (s *Service) Build(ctx context.Context, in Resume) (Resume, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return Resume{}, apperr.Invalid("userId is required")
	}
	ok, err := s.Users.Exists(ctx, in.UserID)
	if err != nil {
		return Resume{}, fmt.Errorf("lookup user: %w", err)
	}
	if !ok {
		return Resume{}, ErrUserNotFound
	}

	now := s.now()
	resume := in
	resume.ID = uuid.NewString()
	resume.Experience = NormalizeRole(in.Experience)
	resume.LastUpdated = now
	resume.CreatedAt = now
	resume.UpdatedAt = now
	if resume.Skills == nil {
		resume.Skills = []string{}
	}
	if resume.Education == nil {
		resume.Education = []Education{}
	}
	if resume.Projects == nil {
		resume.Projects = []Project{}
	}
	if resume.Certifications == nil {
		resume.Certifications = []Certification{}
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	metrics.IncResumesBuilt()
	telemetry.Info("resume.built", map[string]any{"resume_id": resume.ID, "user_id": resume.UserID})
	return resume, nil
}

// ListByUser returns the user's resumes newest first, or ErrNoResumes.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.Invalid("userId is required")
	}
	resumes, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(resumes) == 0 {
		return nil, ErrNoResumes
	}
	return resumes, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
