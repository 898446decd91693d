package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, RememberForever, cfg.Auth.RememberTTL)
	assert.Equal(t, "sha256", cfg.Auth.PasswordScheme)
	assert.False(t, cfg.Auth.RotateSaltOnPasswordChange)
	assert.Equal(t, 4, cfg.Worker.Count)
	assert.Equal(t, 30, cfg.Pagination.PerPage)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_STORE_DRIVER", "sqlite")
	t.Setenv("APP_STORE_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("APP_AUTH_REMEMBER_TTL", "1h")
	t.Setenv("APP_AUTH_ROTATE_SALT_ON_PASSWORD_CHANGE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Store.SQLitePath)
	assert.Equal(t, time.Hour, cfg.Auth.RememberTTL)
	assert.True(t, cfg.Auth.RotateSaltOnPasswordChange)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9090\"\npagination:\n  per_page: 10\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Pagination.PerPage)
}

func TestLoad_RejectsDevSecretInProd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	_, err := Load("")
	assert.ErrorContains(t, err, "cookie_secret")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Store.Driver = "mysql"
	assert.ErrorContains(t, cfg.Validate(), "unsupported store driver")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate_AllowedOrigins(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.HTTP.AllowedOrigins)

	cfg.HTTP.AllowedOrigins = []string{"https://app.example.com"}
	assert.NoError(t, cfg.Validate())

	cfg.HTTP.AllowedOrigins = []string{"https://app.example.com", "*"}
	assert.ErrorContains(t, cfg.Validate(), "allowed_origins")
}
