package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cvisionary/internal/jobs"
	"cvisionary/internal/resumes"
	"cvisionary/internal/reviews"
	"cvisionary/internal/scoring"
	"cvisionary/internal/services/health"
	"cvisionary/internal/shared/auth"
	"cvisionary/internal/shared/cache"
	"cvisionary/internal/shared/config"
	"cvisionary/internal/shared/server"
	"cvisionary/internal/shared/storage/db"
	"cvisionary/internal/shared/telemetry"
	"cvisionary/internal/socials"
	"cvisionary/internal/users"
)

const cacheKeyPrefix = "cvisionary:"

// App holds shared dependencies and the wired router.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Cache   cache.Cache
	Signer  *auth.Signer
	Scraper *socials.GitHubScraper

	UsersRepo   users.Repo
	ResumesRepo resumes.Repo
	JobsRepo    jobs.Repo
	ReviewsRepo reviews.Repo
	SocialsRepo socials.Repo

	UsersService   *users.Service
	ResumesService *resumes.Service
	JobsService    *jobs.Service
	ReviewsService *reviews.Service
	SocialsService *socials.Service
	ScoringService *scoring.Service
	HealthService  *health.Service

	closers []io.Closer
}

// Build connects storage, wires services and handlers, and mounts routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if cfg.JWTSecret == "" && isDevLike(cfg.Env) {
		cfg.JWTSecret = "dev-secret"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token signer: %w", err)
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Signer:  signer,
		Cache:   buildCache(ctx, cfg),
		Scraper: socials.NewGitHubScraper(cfg.GitHubBaseURL, cfg.ScrapeTimeout),
	}
	if closer, ok := app.Cache.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB)
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Verifier:      app.Signer,
		Health:        app.HealthService,
		UserHandler:   users.NewHandler(app.UsersService),
		ResumeHandler: resumes.NewHandler(app.ResumesService),
		JobHandler:    jobs.NewHandler(app.JobsService),
		ReviewHandler: reviews.NewHandler(app.ReviewsService),
		SocialHandler: socials.NewHandler(app.SocialsService),
		ScoreHandler:  scoring.NewHandler(app.ScoringService),
	})

	return app, nil
}

// Close releases the database pool and cache connection.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, db.ErrNoDatabaseURL
	}

	profile := db.ProfileServer
	if cfg.Lambda {
		profile = db.ProfileLambda
	}
	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, profile, poolOverrides(cfg.DBPool))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if profile != db.ProfileLambda {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func poolOverrides(p config.DBPool) db.Options {
	return db.Options{
		MaxOpenConns:    p.MaxOpenConns,
		MaxIdleConns:    p.MaxIdleConns,
		ConnMaxLifetime: p.ConnMaxLifetime,
		ConnMaxIdleTime: p.ConnMaxIdleTime,
		PingTimeout:     p.PingTimeout,
	}
}

// buildCache prefers Redis and falls back to process memory.
func buildCache(ctx context.Context, cfg config.Config) cache.Cache {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return cache.NewMemoryCache()
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rc, err := cache.NewRedisCache(pingCtx, cfg.RedisURL, cacheKeyPrefix)
	if err != nil {
		telemetry.Warn("bootstrap.memory_cache", map[string]any{"error": err.Error()})
		return cache.NewMemoryCache()
	}
	return rc
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ReviewsRepo = &reviews.PGRepo{DB: app.DB}
		app.SocialsRepo = &socials.PGRepo{DB: app.DB}
		app.HealthService = health.NewService(health.ForDB(app.DB))
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ReviewsRepo = reviews.NewMemoryRepo()
		app.SocialsRepo = socials.NewMemoryRepo()
		app.HealthService = health.NewService(nil)
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Signer)
	app.ResumesService = resumes.NewService(app.ResumesRepo, app.UsersService)
	app.JobsService = jobs.NewService(app.JobsRepo, app.UsersService)
	app.ReviewsService = reviews.NewService(app.ReviewsRepo)
	app.SocialsService = socials.NewService(app.Scraper, app.Cache, app.Config.ScrapeCacheTTL, app.SocialsRepo, app.UsersService)
	app.ScoringService = scoring.NewService(app.ResumesRepo, app.JobsRepo)

	if app.UsersService == nil || app.SocialsService == nil {
		return errors.New("failed to initialize services")
	}
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
