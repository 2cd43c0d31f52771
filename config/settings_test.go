package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DB_HOST", "DB_NAME", "TOKEN_TTL", "REFRESH_TTL",
		"CORS_ORIGINS", "LOG_LEVEL", "SESSION_IDLE_TIMEOUT", "REAPER_SCHEDULE", "RANDOM_SEED"} {
		t.Setenv(key, "")
	}

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, 24*time.Hour, s.TokenTTL)
	assert.Equal(t, 7*24*time.Hour, s.RefreshTTL)
	assert.Equal(t, 30*time.Minute, s.IdleTimeout)
	assert.Equal(t, []string{"*"}, s.CORSOrigins)
	assert.Equal(t, "0 * * * * *", s.ReaperSchedule)
	assert.Zero(t, s.RandomSeed)
	assert.Contains(t, s.DatabaseURL, "host=localhost")
	assert.Contains(t, s.DatabaseURL, "dbname=bab_arcade")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/arcade")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("SESSION_IDLE_TIMEOUT", "2m")
	t.Setenv("RANDOM_SEED", "42")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", s.Port)
	assert.Equal(t, "postgres://u:p@db/arcade", s.DatabaseURL)
	assert.Equal(t, 15*time.Minute, s.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, s.CORSOrigins)
	assert.Equal(t, 2*time.Minute, s.IdleTimeout)
	assert.Equal(t, int64(42), s.RandomSeed)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := map[string]string{
		"TOKEN_TTL":            "forever",
		"SESSION_IDLE_TIMEOUT": "-1m",
		"RANDOM_SEED":          "abc",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("chatty").GetLevel())
}
