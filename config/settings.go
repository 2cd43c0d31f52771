package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Settings struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	RefreshTTL      time.Duration
	CORSOrigins     []string
	LogLevel        string
	IdleTimeout     time.Duration
	ReaperSchedule  string
	CleanupSchedule string
	RandomSeed      int64
	GinMode         string
}

// Load reads the settings from the environment. Missing values fall back to
// development defaults, malformed ones are an error.
func Load() (*Settings, error) {
	s := &Settings{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     databaseURL(),
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ReaperSchedule:  getEnv("REAPER_SCHEDULE", "0 * * * * *"),
		CleanupSchedule: getEnv("TOKEN_CLEANUP_SCHEDULE", "0 0 * * * *"),
		GinMode:         os.Getenv("GIN_MODE"),
	}

	var err error
	if s.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if s.RefreshTTL, err = getDuration("REFRESH_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if s.IdleTimeout, err = getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if raw := os.Getenv("RANDOM_SEED"); raw != "" {
		if s.RandomSeed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("RANDOM_SEED: %w", err)
		}
	}

	return s, nil
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "bab_arcade"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
