package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("ADMIN_EMAILS", " Admin@Example.com, ops@example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "signlearn_sid", cfg.SessionCookieName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.True(t, cfg.IsAdminEmail("ADMIN@example.com "))
	assert.False(t, cfg.IsAdminEmail("someone@example.com"))
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBDriver")
}

func TestLoadConfigRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "secret")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-long-random-production-secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.AppEnv)
}

func TestGetEnvDurationFallsBackOnGarbage(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	assert.Equal(t, 3*time.Second, getEnvDuration("REQUEST_TIMEOUT", 3*time.Second))

	t.Setenv("REQUEST_TIMEOUT", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvDuration("REQUEST_TIMEOUT", 3*time.Second))
}
