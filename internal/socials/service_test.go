package socials

import (
	"context"
	"errors"
	"testing"
	"time"

	"cvisionary/internal/shared/apperr"
	"cvisionary/internal/shared/cache"
)

type fakeScraper struct {
	profileCalls int
	repoCalls    int
	err          error
}

func (f *fakeScraper) Profile(_ context.Context, username string) (GitHubProfile, error) {
	f.profileCalls++
	if f.err != nil {
		return GitHubProfile{}, f.err
	}
	return GitHubProfile{Username: username, Name: "Octo", Followers: 3}, nil
}

func (f *fakeScraper) Repos(_ context.Context, _ string) ([]GitHubRepo, error) {
	f.repoCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []GitHubRepo{{Name: "hello", Stars: 1}}, nil
}

type fakeUsers map[string]bool

func (f fakeUsers) Exists(_ context.Context, userID string) (bool, error) {
	return f[userID], nil
}

func newTestService(scraper Scraper) *Service {
	return NewService(scraper, cache.NewMemoryCache(), time.Minute, NewMemoryRepo(), fakeUsers{"u1": true})
}

func TestGitHubProfileServedFromCache(t *testing.T) {
	scraper := &fakeScraper{}
	svc := newTestService(scraper)
	ctx := context.Background()

	first, err := svc.GitHubProfile(ctx, "octocat", "")
	if err != nil {
		t.Fatalf("GitHubProfile: %v", err)
	}
	second, err := svc.GitHubProfile(ctx, "OctoCat", "")
	if err != nil {
		t.Fatalf("GitHubProfile: %v", err)
	}
	if scraper.profileCalls != 1 {
		t.Fatalf("expected one scrape, got %d", scraper.profileCalls)
	}
	if first.Name != second.Name || second.Followers != 3 {
		t.Fatalf("cached profile differs: %+v vs %+v", first, second)
	}
}

func TestGitHubRejectsBadUsername(t *testing.T) {
	scraper := &fakeScraper{}
	svc := newTestService(scraper)
	if _, err := svc.GitHubRepos(context.Background(), "../admin", ""); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	if scraper.repoCalls != 0 {
		t.Fatalf("scraper called for invalid username")
	}
}

func TestGitHubScrapeFailureNotCached(t *testing.T) {
	scraper := &fakeScraper{err: apperr.New(apperr.KindUpstream, "github_unavailable", "down")}
	svc := newTestService(scraper)
	ctx := context.Background()

	if _, err := svc.GitHubProfile(ctx, "octocat", ""); apperr.KindOf(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream, got %v", err)
	}
	scraper.err = nil
	if _, err := svc.GitHubProfile(ctx, "octocat", ""); err != nil {
		t.Fatalf("GitHubProfile: %v", err)
	}
	if scraper.profileCalls != 2 {
		t.Fatalf("expected failure not to be cached, calls=%d", scraper.profileCalls)
	}
}

func TestScrapeRecordsConnection(t *testing.T) {
	svc := newTestService(&fakeScraper{})
	ctx := context.Background()

	if _, err := svc.GitHubProfile(ctx, "octocat", "u1"); err != nil {
		t.Fatalf("GitHubProfile: %v", err)
	}
	if _, err := svc.GitHubRepos(ctx, "octocat", "u1"); err != nil {
		t.Fatalf("GitHubRepos: %v", err)
	}
	conns, err := svc.ListConnections(ctx, "u1")
	if err != nil {
		t.Fatalf("ListConnections: %v", err)
	}
	if len(conns) != 1 || conns[0].Provider != ProviderGitHub || conns[0].ProviderID != "octocat" {
		t.Fatalf("unexpected connections: %+v", conns)
	}
	if _, ok := conns[0].ScrapedData["profile"]; !ok {
		t.Fatalf("profile not recorded: %+v", conns[0].ScrapedData)
	}
	if _, ok := conns[0].ScrapedData["repositories"]; !ok {
		t.Fatalf("repositories not recorded: %+v", conns[0].ScrapedData)
	}

	if _, err := svc.GitHubProfile(ctx, "octocat", "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestConnectReplacesExisting(t *testing.T) {
	svc := newTestService(&fakeScraper{})
	ctx := context.Background()

	first, err := svc.Connect(ctx, ConnectInput{UserID: "u1", Provider: ProviderLinkedIn, ProviderID: "old", AccessToken: "t1"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	second, err := svc.Connect(ctx, ConnectInput{UserID: "u1", Provider: ProviderLinkedIn, ProviderID: "new", AccessToken: "t2"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if second.ID != first.ID || second.ProviderID != "new" || second.AccessToken != "t2" {
		t.Fatalf("expected replacement keeping id, got %+v", second)
	}
	conns, _ := svc.ListConnections(ctx, "u1")
	if len(conns) != 1 {
		t.Fatalf("expected one connection, got %d", len(conns))
	}

	if _, err := svc.Connect(ctx, ConnectInput{UserID: "u1", Provider: "Twitter"}); !errors.Is(err, ErrInvalidProvider) {
		t.Fatalf("expected ErrInvalidProvider, got %v", err)
	}
	if _, err := svc.Connect(ctx, ConnectInput{UserID: "ghost", Provider: ProviderGitHub}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestScrapeKeepsConnectedTokens(t *testing.T) {
	svc := newTestService(&fakeScraper{})
	ctx := context.Background()

	if _, err := svc.Connect(ctx, ConnectInput{UserID: "u1", Provider: ProviderGitHub, ProviderID: "octocat", AccessToken: "tok"}); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := svc.GitHubRepos(ctx, "octocat", "u1"); err != nil {
		t.Fatalf("GitHubRepos: %v", err)
	}
	conn, err := svc.Repo.Get(ctx, "u1", ProviderGitHub)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if conn.AccessToken != "tok" {
		t.Fatalf("scrape dropped the access token")
	}
	if _, ok := conn.ScrapedData["repositories"]; !ok {
		t.Fatalf("repositories not recorded: %+v", conn.ScrapedData)
	}
}
