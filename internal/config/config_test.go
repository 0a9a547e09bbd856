package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://api.fireblocks.io/v1", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.InitialBackoff)
	assert.Equal(t, 5*time.Second, cfg.Retry.MaxBackoff)
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)
	assert.Equal(t, 50, cfg.Limits.RequestsPerSecond)
	assert.False(t, cfg.Debug)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingYAMLIsFine(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	data := `
server:
  addr: ":9999"
backend:
  timeout: 5s
retry:
  max_attempts: 5
limits:
  requests_per_second: 10
  burst: 20
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 10, cfg.Limits.RequestsPerSecond)
	// Untouched keys keep their defaults.
	assert.Equal(t, "https://api.fireblocks.io/v1", cfg.Backend.BaseURL)
}

func TestLoadMalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))
	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0o600))

	t.Setenv(EnvListenAddr, ":7777")
	t.Setenv(EnvAPIBaseURL, "https://sandbox-api.fireblocks.io/v1")
	t.Setenv(EnvAPIKey, "key-from-env")
	t.Setenv(EnvSecretKeyPath, "/etc/fireblocks/secret.key")
	t.Setenv(EnvDebug, "true")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, "https://sandbox-api.fireblocks.io/v1", cfg.Backend.BaseURL)
	assert.Equal(t, "key-from-env", cfg.Backend.APIKey)
	assert.Equal(t, "/etc/fireblocks/secret.key", cfg.Backend.SecretKeyPath)
	assert.True(t, cfg.Debug)
}

// Credentials load from the environment only; a YAML file cannot inject
// them.
func TestYAMLCannotCarryCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	data := `
backend:
  api_key: "smuggled"
  secret_key_path: "/tmp/smuggled.key"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvSecretKeyPath, "")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Backend.APIKey)
	assert.Empty(t, cfg.Backend.SecretKeyPath)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"empty base url", func(c *Config) { c.Backend.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }},
		{"multiplier below one", func(c *Config) { c.Retry.Multiplier = 0.5 }},
		{"max backoff below initial", func(c *Config) { c.Retry.MaxBackoff = c.Retry.InitialBackoff / 2 }},
		{"zero rate limit", func(c *Config) { c.Limits.RequestsPerSecond = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
