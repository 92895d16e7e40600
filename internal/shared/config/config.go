package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cvisionary/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	CORSAllowOrigin    []string
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	RedisURL           string
	GitHubBaseURL      string
	ScrapeCacheTTL     time.Duration
	ScrapeTimeout      time.Duration
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
	// Lambda is set when running inside AWS Lambda.
	Lambda bool
	DBPool DBPool
}

// DBPool overrides the database pool defaults. Zero fields keep the default
// for the runtime.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			telemetry.Warn("config.dotenv", map[string]any{"path": path, "error": err.Error()})
		}
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.missing", map[string]any{"key": "DATABASE_URL", "env": env})
	}
	if env == "production" && secret == "" {
		telemetry.Warn("config.missing", map[string]any{"key": "JWT_SECRET", "env": env})
	}
	if env != "production" && secret == "" {
		secret = "dev-secret"
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:        dbURL,
		JWTSecret:          secret,
		TokenTTL:           getEnvDuration("TOKEN_TTL", 24*time.Hour),
		RedisURL:           getEnv("REDIS_URL", ""),
		GitHubBaseURL:      strings.TrimRight(getEnv("GITHUB_BASE_URL", "https://github.com"), "/"),
		ScrapeCacheTTL:     getEnvDuration("SCRAPE_CACHE_TTL", 10*time.Minute),
		ScrapeTimeout:      getEnvDuration("SCRAPE_TIMEOUT", 15*time.Second),
		AuthRateLimitRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 1),
		AuthRateLimitBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		Lambda:             strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != "",
		DBPool: DBPool{
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 0),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 0),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 0),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 0),
			PingTimeout:     getEnvDuration("DB_PING_TIMEOUT", 0),
		},
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		invalid(key, raw, def)
		return def
	}
	return val
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		invalid(key, raw, def)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		invalid(key, raw, def)
		return def
	}
	return val
}

func invalid(key, raw string, def any) {
	telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw, "default": def})
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}
