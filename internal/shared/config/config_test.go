package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cvisionary/internal/shared/telemetry"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ENV", "PORT", "JWT_SECRET", "TOKEN_TTL", "DATABASE_URL", "GITHUB_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %s", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.JWTSecret != "dev-secret" {
		t.Fatalf("expected dev secret fallback, got %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.GitHubBaseURL != "https://github.com" {
		t.Fatalf("unexpected github base url %s", cfg.GitHubBaseURL)
	}
}

func TestLoadProductionKeepsEmptySecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %s", cfg.Env)
	}
	if cfg.JWTSecret != "" {
		t.Fatalf("expected no fallback secret in production")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"PORT", "SCRAPE_CACHE_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9191\nSCRAPE_CACHE_TTL=30s\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg := Load()
	if cfg.Port != "9191" {
		t.Fatalf("expected port from .env, got %s", cfg.Port)
	}
	if cfg.ScrapeCacheTTL != 30*time.Second {
		t.Fatalf("expected 30s cache ttl, got %s", cfg.ScrapeCacheTTL)
	}
}

func TestLoadDBPoolAndLambda(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "cvisionary-api")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_MAX_IDLE_CONNS", "")

	cfg := Load()
	if !cfg.Lambda {
		t.Fatalf("expected lambda runtime")
	}
	want := DBPool{MaxOpenConns: 7, ConnMaxIdleTime: 45 * time.Second}
	if cfg.DBPool != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.DBPool)
	}
}

func TestLoadLogsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TOKEN_TTL", "soon")
	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })

	cfg := Load()
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default ttl, got %s", cfg.TokenTTL)
	}

	found := false
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		if entry["msg"] == "config.invalid" && entry["key"] == "TOKEN_TTL" && entry["level"] == "warn" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected config.invalid warning, got %s", buf.String())
	}
}
