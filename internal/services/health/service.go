package health

import (
	"context"
	"database/sql"
	"time"

	"cvisionary/internal/shared/storage/db"
)

// Checker probes the backing store and reports its schema version.
type Checker interface {
	PingContext(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int64, error)
}

// Status is the /health payload.
type Status struct {
	OK            bool   `json:"ok"`
	Database      string `json:"database"`
	SchemaVersion int64  `json:"schemaVersion,omitempty"`
	Uptime        string `json:"uptime"`
}

// Service encapsulates health-related checks.
type Service struct {
	Store   Checker
	Timeout time.Duration
	started time.Time
	now     func() time.Time
}

// NewService constructs a health service. store may be nil when the app runs
// on in-memory repositories.
func NewService(store Checker) *Service {
	return &Service{Store: store, Timeout: 2 * time.Second, started: time.Now(), now: time.Now}
}

// ForDB adapts a database pool to Checker.
func ForDB(database *sql.DB) Checker {
	if database == nil {
		return nil
	}
	return sqlChecker{database}
}

type sqlChecker struct{ db *sql.DB }

func (c sqlChecker) PingContext(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c sqlChecker) SchemaVersion(ctx context.Context) (int64, error) {
	return db.SchemaVersion(ctx, c.db)
}

// Status reports whether the service and its database are reachable.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", Uptime: s.now().Sub(s.started).Truncate(time.Second).String()}
	if s.Store == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Store.PingContext(ctx); err != nil {
		st.OK = false
		st.Database = "down"
		return st
	}
	st.Database = "up"
	if v, err := s.Store.SchemaVersion(ctx); err == nil {
		st.SchemaVersion = v
	}
	return st
}
