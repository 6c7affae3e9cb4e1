package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sportmeet")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sportmeet")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 168*time.Hour, cfg.Auth.JWTExpiry)
	require.Equal(t, "development", cfg.Environment)
	require.True(t, cfg.CORS.AllowAllOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/sportmeet")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRY_HOURS", "24")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	require.False(t, cfg.CORS.AllowAllOrigins)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sportmeet")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadFileOverlaysEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sportmeet")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "8080")

	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "server:\n  host: 127.0.0.1\n  port: 9999\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9999, cfg.Server.Port)
	// Values absent from the file keep their env-derived settings.
	require.Equal(t, "postgres://localhost/sportmeet", cfg.Database.URL)
}

func TestLoadFileMissing(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sportmeet")
	t.Setenv("JWT_SECRET", "secret")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
}
