package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort            = "8888"
	defaultSessionTTL      = 2 * time.Hour
	defaultJanitorSchedule = "@every 5m"
	defaultGeminiModel     = "gemini-2.0-flash-001"
)

// Config is read once at startup from the environment. Outside production
// the environment is first populated from .env.
type Config struct {
	AppEnv string
	Port   string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	AdminKey       string
	AllowedOrigins []string

	LinkListPath     string
	LinkListBucket   string
	LinkListKey      string
	AWSRegion        string
	SeedCatalogTitle string
	SeedCatalogTopic string

	GeminiAPIKey string
	GeminiModel  string

	YouTubeAPIKey string

	SentryDSN string

	SessionTTL      time.Duration
	JanitorSchedule string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// DSN builds the connection string for the configured driver. In production
// DATABASE_URL wins and sslmode=require is enforced.
func (c Config) DSN() string {
	if c.DBDriver == "sqlite" {
		if c.DBName == "" {
			return "pickme.db"
		}
		return c.DBName
	}

	if c.IsProduction() && c.DatabaseURL != "" {
		dsn := c.DatabaseURL
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func Load() (Config, error) {
	cfg := Config{
		AppEnv:           strings.TrimSpace(os.Getenv("APP_ENV")),
		DBDriver:         strings.ToLower(envOr("DB_DRIVER", "postgres")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		AdminKey:         strings.TrimSpace(os.Getenv("ADMIN_KEY")),
		AllowedOrigins:   splitCSV(envOr("ALLOWED_ORIGINS", "http://localhost:3000")),
		LinkListPath:     strings.TrimSpace(os.Getenv("LINK_LIST_PATH")),
		LinkListBucket:   strings.SplitN(strings.TrimSpace(os.Getenv("LINK_LIST_S3_BUCKET")), "/", 2)[0],
		LinkListKey:      strings.TrimSpace(os.Getenv("LINK_LIST_S3_KEY")),
		AWSRegion:        envOr("AWS_REGION", "us-east-2"),
		SeedCatalogTitle: envOr("SEED_CATALOG_TITLE", "Pick Me Cup"),
		SeedCatalogTopic: envOr("SEED_CATALOG_TOPIC", "singer"),
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:      envOr("GEMINI_MODEL", defaultGeminiModel),
		YouTubeAPIKey:    strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY")),
		SentryDSN:        strings.TrimSpace(os.Getenv("SENTRY_DSN")),
		SessionTTL:       defaultSessionTTL,
		JanitorSchedule:  envOr("JANITOR_SCHEDULE", defaultJanitorSchedule),
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = envOr("API_PORT", defaultPort)
	}

	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q: %w", raw, err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q: must be positive", raw)
		}
		cfg.SessionTTL = ttl
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
