package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: "testing-secret"
upload:
  webhook_url: "https://script.example.com/exec"
  api_key: "k"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "testing-secret", cfg.JWT.Secret)
	// Defaults survive partial files.
	assert.Equal(t, "15m", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "notestack", cfg.Database.DBName)
	assert.Equal(t, "https://ntfy.sh", cfg.Notify.BaseURL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "file-secret"
upload:
  webhook_url: "https://script.example.com/exec"
  api_key: "k"
`)

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_MAX_OPEN_CONNS", "42")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 42, cfg.Database.MaxOpenConns)
}

func TestLoadConfigRejectsMissingSecret(t *testing.T) {
	path := writeConfigFile(t, `
upload:
  webhook_url: "https://script.example.com/exec"
  api_key: "k"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "s"
  access_token_expiration: "soon"
upload:
  webhook_url: "https://script.example.com/exec"
  api_key: "k"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
