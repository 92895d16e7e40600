package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"cvisionary/internal/shared/telemetry"
)

// ErrNoDatabaseURL is returned by Open when no DSN is configured.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is empty")

// Profile selects pool defaults for the kind of process opening the database.
type Profile int

const (
	// ProfileServer is the long-running API process.
	ProfileServer Profile = iota
	// ProfileLambda shares one small pool per execution environment.
	ProfileLambda
	// ProfileMigrate is the one-shot migrate command.
	ProfileMigrate
)

func (p Profile) String() string {
	switch p {
	case ProfileLambda:
		return "lambda"
	case ProfileMigrate:
		return "migrate"
	default:
		return "server"
	}
}

// Options controls pool sizing and the startup ping. Zero fields mean "use
// the profile default".
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Defaults returns the pool settings for the profile.
func (p Profile) Defaults() Options {
	switch p {
	case ProfileLambda:
		return Options{
			MaxOpenConns:    2,
			MaxIdleConns:    1,
			ConnMaxIdleTime: 30 * time.Second,
			ConnMaxLifetime: 15 * time.Minute,
			PingTimeout:     3 * time.Second,
		}
	case ProfileMigrate:
		return Options{
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxIdleTime: 2 * time.Minute,
			ConnMaxLifetime: time.Hour,
			PingTimeout:     5 * time.Second,
		}
	default:
		return Options{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxIdleTime: 2 * time.Minute,
			ConnMaxLifetime: time.Hour,
			PingTimeout:     5 * time.Second,
		}
	}
}

// Merge returns o with every positive field of override applied.
func (o Options) Merge(override Options) Options {
	if override.MaxOpenConns > 0 {
		o.MaxOpenConns = override.MaxOpenConns
	}
	if override.MaxIdleConns > 0 {
		o.MaxIdleConns = override.MaxIdleConns
	}
	if override.ConnMaxLifetime > 0 {
		o.ConnMaxLifetime = override.ConnMaxLifetime
	}
	if override.ConnMaxIdleTime > 0 {
		o.ConnMaxIdleTime = override.ConnMaxIdleTime
	}
	if override.PingTimeout > 0 {
		o.PingTimeout = override.PingTimeout
	}
	if o.MaxIdleConns > o.MaxOpenConns {
		o.MaxIdleConns = o.MaxOpenConns
	}
	return o
}

var (
	openDB = sql.Open

	singletonMu    sync.Mutex
	singletonCond  = sync.NewCond(&singletonMu)
	singletonDB    *sql.DB
	singletonInFly bool
)

// Open connects to databaseURL using the profile's pool defaults with
// overrides applied, and pings before returning. The Lambda profile returns
// the pool shared by the execution environment; callers must not close it
// between invocations.
func Open(ctx context.Context, databaseURL string, profile Profile, overrides Options) (*sql.DB, error) {
	if databaseURL == "" {
		telemetry.Warn("db.open.no_url", map[string]any{"profile": profile.String()})
		return nil, ErrNoDatabaseURL
	}
	opts := profile.Defaults().Merge(overrides)
	if profile == ProfileLambda {
		return shared(ctx, databaseURL, opts)
	}
	return connect(ctx, databaseURL, profile, opts)
}

func connect(ctx context.Context, databaseURL string, profile Profile, opts Options) (*sql.DB, error) {
	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		telemetry.Error("db.open.ping_failed", map[string]any{"profile": profile.String(), "error": err.Error()})
		return nil, fmt.Errorf("ping database: %w", err)
	}

	telemetry.Info("db.open", map[string]any{
		"profile":  profile.String(),
		"max_open": opts.MaxOpenConns,
		"max_idle": opts.MaxIdleConns,
	})
	return db, nil
}

// shared initializes the process-wide pool once. A failed attempt is not
// remembered, so the next invocation retries.
func shared(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	singletonMu.Lock()
	for singletonInFly && singletonDB == nil {
		singletonCond.Wait()
	}
	if singletonDB != nil {
		db := singletonDB
		singletonMu.Unlock()
		return db, nil
	}
	singletonInFly = true
	singletonMu.Unlock()

	db, err := connect(ctx, databaseURL, ProfileLambda, opts)

	singletonMu.Lock()
	if err == nil {
		singletonDB = db
	}
	singletonInFly = false
	singletonCond.Broadcast()
	singletonMu.Unlock()
	return db, err
}
