package socials

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvisionary/internal/shared/apperr"
	"cvisionary/internal/shared/cache"
	"cvisionary/internal/shared/metrics"
	"cvisionary/internal/shared/telemetry"
)

const DefaultCacheTTL = 10 * time.Minute

// Scraper fetches public GitHub data.
type Scraper interface {
	Profile(ctx context.Context, username string) (GitHubProfile, error)
	Repos(ctx context.Context, username string) ([]GitHubRepo, error)
}

// UserDirectory answers whether a user id is registered.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	Scraper  Scraper
	Cache    cache.Cache
	CacheTTL time.Duration
	Repo     Repo
	Users    UserDirectory
	Now      func() time.Time
}

func NewService(scraper Scraper, c cache.Cache, ttl time.Duration, repo Repo, users UserDirectory) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{Scraper: scraper, Cache: c, CacheTTL: ttl, Repo: repo, Users: users, Now: time.Now}
}

// ConnectInput describes a social account link.
type ConnectInput struct {
	UserID       string
	Provider     string
	ProviderID   string
	AccessToken  string
	RefreshToken string
}

// GitHubProfile returns the user's public profile, recording it on the
// caller's GitHub connection when userID is set.
func (s *Service) GitHubProfile(ctx context.Context, username, userID string) (GitHubProfile, error) {
	username = strings.TrimSpace(username)
	if !ValidUsername(username) {
		return GitHubProfile{}, ErrInvalidUsername
	}
	var profile GitHubProfile
	err := s.cached(ctx, "github:profile:"+strings.ToLower(username), &profile, func() (any, error) {
		return s.Scraper.Profile(ctx, username)
	})
	if err != nil {
		return GitHubProfile{}, err
	}
	if err := s.record(ctx, userID, username, "profile", profile); err != nil {
		return GitHubProfile{}, err
	}
	return profile, nil
}

// GitHubRepos returns the user's public repositories.
func (s *Service) GitHubRepos(ctx context.Context, username, userID string) ([]GitHubRepo, error) {
	username = strings.TrimSpace(username)
	if !ValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	repos := []GitHubRepo{}
	err := s.cached(ctx, "github:repos:"+strings.ToLower(username), &repos, func() (any, error) {
		return s.Scraper.Repos(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, userID, username, "repositories", repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Connect creates or replaces the user's connection for a provider.
func (s *Service) Connect(ctx context.Context, in ConnectInput) (Connection, error) {
	userID := strings.TrimSpace(in.UserID)
	if !validProvider(in.Provider) {
		return Connection{}, ErrInvalidProvider
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return Connection{}, err
	}
	now := s.now()
	return s.Repo.Upsert(ctx, Connection{
		ID:           uuid.NewString(),
		UserID:       userID,
		Provider:     in.Provider,
		ProviderID:   strings.TrimSpace(in.ProviderID),
		AccessToken:  in.AccessToken,
		RefreshToken: in.RefreshToken,
		ScrapedData:  map[string]any{},
		ConnectedAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// ListConnections returns the user's connections, possibly none.
func (s *Service) ListConnections(ctx context.Context, userID string) ([]Connection, error) {
	userID = strings.TrimSpace(userID)
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, userID)
}

// cached decodes key into dest, calling fetch and storing its result on a
// miss. Cache failures are logged and otherwise ignored.
func (s *Service) cached(ctx context.Context, key string, dest any, fetch func() (any, error)) error {
	if s.Cache != nil {
		raw, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			telemetry.Warn("scrape.cache_get_failed", map[string]any{"key": key, "error": err.Error()})
		case ok:
			if err := json.Unmarshal(raw, dest); err == nil {
				metrics.IncScrapeCacheHit()
				return nil
			}
		}
	}

	metrics.IncScrapeFetch()
	value, err := fetch()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode scrape result: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, raw, s.CacheTTL); err != nil {
			telemetry.Warn("scrape.cache_set_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}
	return json.Unmarshal(raw, dest)
}

// record merges scraped data into the user's GitHub connection.
func (s *Service) record(ctx context.Context, userID, username, field string, value any) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || s.Repo == nil {
		return nil
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	now := s.now()
	_, err := s.Repo.MergeScrapedData(ctx, Connection{
		ID:          uuid.NewString(),
		UserID:      userID,
		Provider:    ProviderGitHub,
		ProviderID:  username,
		ScrapedData: map[string]any{field: value},
		ConnectedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return err
}

func (s *Service) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return apperr.Invalid("userId is required")
	}
	if s.Users == nil {
		return nil
	}
	ok, err := s.Users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
