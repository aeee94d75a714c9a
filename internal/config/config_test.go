package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{"PORT", "FRONTEND_URL", "DB_TYPE", "DB_CONNECTION_LIMIT", "JWT_EXPIRES_IN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3001", cfg.Port)
	require.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	require.Equal(t, "sqlite", cfg.DBType)
	require.Equal(t, 5, cfg.DBConnectionLimit)
	require.Equal(t, 168*time.Hour, cfg.JWTExpiresIn)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "24h")
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_CONNECTION_LIMIT", "20")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	require.Equal(t, "mysql", cfg.DBType)
	require.Equal(t, 20, cfg.DBConnectionLimit)
}

func TestLoadRejectsBadLifetime(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "soon")

	_, err := Load()
	require.Error(t, err)
}
