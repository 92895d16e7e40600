package socials

import "time"

const (
	ProviderGitHub   = "GitHub"
	ProviderLinkedIn = "LinkedIn"
)

// Connection links a user to an external profile. Tokens are stored but
// never serialised to clients.
type Connection struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Provider     string         `json:"provider"`
	ProviderID   string         `json:"providerId"`
	AccessToken  string         `json:"-"`
	RefreshToken string         `json:"-"`
	ScrapedData  map[string]any `json:"scrapedData"`
	ConnectedAt  time.Time      `json:"connectedAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// GitHubProfile is the public data shown on a GitHub user page.
type GitHubProfile struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"publicRepos"`
	ProfileURL  string `json:"profileUrl"`
}

// GitHubRepo is one entry of a user's repository tab.
type GitHubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
}

func validProvider(p string) bool {
	return p == ProviderGitHub || p == ProviderLinkedIn
}
