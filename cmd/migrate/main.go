package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"cvisionary/internal/shared/config"
	"cvisionary/internal/shared/storage/db"
	"cvisionary/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, db.ProfileMigrate, db.Options{
		MaxOpenConns:    cfg.DBPool.MaxOpenConns,
		ConnMaxLifetime: cfg.DBPool.ConnMaxLifetime,
		PingTimeout:     cfg.DBPool.PingTimeout,
	})
	if err != nil {
		telemetry.Error("migrate.connect", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}
