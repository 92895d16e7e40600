package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cvisionary/internal/shared/apperr"
	"cvisionary/internal/shared/auth"
	"cvisionary/internal/shared/metrics"
	"cvisionary/internal/shared/telemetry"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// TokenIssuer signs access tokens for an authenticated identity.
type TokenIssuer interface {
	Sign(id auth.Identity) (string, time.Time, error)
}

type Service struct {
	Repo   Repo
	Tokens TokenIssuer
	Cost   int
	Now    func() time.Time
}

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}

func NewService(repo Repo, tokens TokenIssuer) *Service {
	return &Service{Repo: repo, Tokens: tokens, Cost: PasswordCost, Now: time.Now}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The email is checked before the username so a
// request that collides on both reports the email.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	email := NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return User{}, apperr.Invalid("username, email and password are required")
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		ImageURL:     DefaultImageURL,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	metrics.IncUsersRegistered()
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.IncLoginsFailed()
		}
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.IncLoginsFailed()
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.Tokens.Sign(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// List returns every registered user.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, apperr.Invalid("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// Exists reports whether a user with the id is registered.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.Repo.GetByID(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *Service) cost() int {
	if s.Cost == 0 {
		return PasswordCost
	}
	return s.Cost
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
