package socials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"cvisionary/internal/shared/apperr"
	"cvisionary/internal/shared/telemetry"
)

const (
	DefaultGitHubBaseURL = "https://github.com"
	defaultScrapeTimeout = 15 * time.Second
	scrapeUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// ValidUsername reports whether s is a well-formed GitHub handle.
func ValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// GitHubScraper reads public profile pages with colly.
type GitHubScraper struct {
	BaseURL string
	Timeout time.Duration
}

func NewGitHubScraper(baseURL string, timeout time.Duration) *GitHubScraper {
	if baseURL == "" {
		baseURL = DefaultGitHubBaseURL
	}
	if timeout <= 0 {
		timeout = defaultScrapeTimeout
	}
	return &GitHubScraper{BaseURL: strings.TrimRight(baseURL, "/"), Timeout: timeout}
}

// Profile scrapes https://github.com/<username>.
func (s *GitHubScraper) Profile(ctx context.Context, username string) (GitHubProfile, error) {
	pageURL := s.BaseURL + "/" + url.PathEscape(username)
	profile := GitHubProfile{Username: username, ProfileURL: pageURL}

	c, err := s.collector()
	if err != nil {
		return GitHubProfile{}, err
	}
	c.OnHTML("span.p-name", func(e *colly.HTMLElement) {
		profile.Name = strings.TrimSpace(e.Text)
	})
	c.OnHTML("div.p-note", func(e *colly.HTMLElement) {
		bio := e.Attr("data-bio-text")
		if bio == "" {
			bio = e.Text
		}
		profile.Bio = strings.TrimSpace(bio)
	})
	c.OnHTML("img.avatar-user", func(e *colly.HTMLElement) {
		if profile.AvatarURL == "" {
			profile.AvatarURL = e.Attr("src")
		}
	})
	c.OnHTML(`li[itemprop="homeLocation"]`, func(e *colly.HTMLElement) {
		profile.Location = strings.TrimSpace(e.Text)
	})
	c.OnHTML(`li[itemprop="url"] a`, func(e *colly.HTMLElement) {
		profile.Website = e.Attr("href")
	})
	c.OnHTML(`a[href$="tab=followers"] span.text-bold`, func(e *colly.HTMLElement) {
		profile.Followers = parseCount(e.Text)
	})
	c.OnHTML(`a[href$="tab=following"] span.text-bold`, func(e *colly.HTMLElement) {
		profile.Following = parseCount(e.Text)
	})
	c.OnHTML(`a[href$="tab=repositories"] span.Counter`, func(e *colly.HTMLElement) {
		count := e.Attr("title")
		if count == "" {
			count = e.Text
		}
		profile.PublicRepos = parseCount(count)
	})

	if err := s.visit(ctx, c, pageURL); err != nil {
		return GitHubProfile{}, err
	}
	return profile, nil
}

// Repos scrapes the repositories tab of a user page.
func (s *GitHubScraper) Repos(ctx context.Context, username string) ([]GitHubRepo, error) {
	pageURL := s.BaseURL + "/" + url.PathEscape(username) + "?tab=repositories"
	repos := []GitHubRepo{}

	c, err := s.collector()
	if err != nil {
		return nil, err
	}
	c.OnHTML("#user-repositories-list li", func(e *colly.HTMLElement) {
		name := strings.TrimSpace(e.ChildText(`h3 a`))
		if name == "" {
			return
		}
		repos = append(repos, GitHubRepo{
			Name:        name,
			Description: strings.TrimSpace(e.ChildText(`p[itemprop="description"]`)),
			URL:         e.Request.AbsoluteURL(e.ChildAttr(`h3 a`, "href")),
			Language:    strings.TrimSpace(e.ChildText(`span[itemprop="programmingLanguage"]`)),
			Stars:       parseCount(e.ChildText(`a[href$="/stargazers"]`)),
			Forks:       parseCount(e.ChildText(`a[href$="/forks"]`)),
		})
	})

	if err := s.visit(ctx, c, pageURL); err != nil {
		return nil, err
	}
	return repos, nil
}

func (s *GitHubScraper) collector() (*colly.Collector, error) {
	base, err := url.Parse(s.BaseURL)
	if err != nil || base.Hostname() == "" {
		return nil, fmt.Errorf("invalid github base url %q", s.BaseURL)
	}
	c := colly.NewCollector(
		colly.AllowedDomains(base.Hostname()),
		colly.UserAgent(scrapeUserAgent),
	)
	c.SetRequestTimeout(s.Timeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
	})
	return c, nil
}

func (s *GitHubScraper) visit(ctx context.Context, c *colly.Collector, pageURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	status := 0
	c.OnResponse(func(r *colly.Response) { status = r.StatusCode })
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	start := time.Now()
	err := c.Visit(pageURL)
	telemetry.Info("github.scrape", map[string]any{
		"url":         pageURL,
		"status":      status,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err == nil {
		return ctx.Err()
	}
	if status == http.StatusNotFound {
		return ErrGitHubNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return apperr.Wrap(apperr.KindUpstream, "github_unavailable", "Failed to fetch GitHub data", err)
}

// parseCount reads counters such as "42", "1,024" or "1.2k".
func parseCount(raw string) int {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1e3, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1e6, strings.TrimSuffix(s, "m")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v*mult + 0.5)
}
