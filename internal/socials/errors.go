package socials

import "cvisionary/internal/shared/apperr"

var (
	ErrInvalidUsername = apperr.New(apperr.KindInvalid, "invalid_username", "Invalid GitHub username")
	ErrInvalidProvider = apperr.New(apperr.KindInvalid, "invalid_provider", "Provider must be GitHub or LinkedIn")
	ErrGitHubNotFound  = apperr.New(apperr.KindNotFound, "github_user_not_found", "GitHub user not found")
	ErrUserNotFound    = apperr.New(apperr.KindNotFound, "user_not_found", "User not found")
	ErrNotFound        = apperr.New(apperr.KindNotFound, "connection_not_found", "Social connection not found")
)
