// Package config loads gateway configuration. Credentials come from the
// environment (API key) and the filesystem (signing key path); operational
// tuning may be overlaid from config/gateway.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names. The API key and the signing-key path are
// deliberately distinct configuration keys so that one channel never
// carries both secrets.
const (
	EnvAPIKey        = "FIREBLOCKS_API_KEY"
	EnvSecretKeyPath = "FIREBLOCKS_SECRET_KEY_PATH"
	EnvAPIBaseURL    = "FIREBLOCKS_API_BASE_URL"
	EnvListenAddr    = "GATEWAY_ADDR"
	EnvDebug         = "GATEWAY_DEBUG"
)

const defaultBaseURL = "https://api.fireblocks.io/v1"

// Config is the full gateway configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Retry   RetryConfig   `yaml:"retry"`
	Limits  LimitConfig   `yaml:"limits"`
	Debug   bool          `yaml:"debug"`
}

// ServerConfig configures the inbound HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// BackendConfig configures the custody API connection. APIKey and
// SecretKeyPath are filled from the environment, never from YAML.
type BackendConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"` // per-attempt
	APIKey        string        `yaml:"-"`
	SecretKeyPath string        `yaml:"-"`
}

// RetryConfig bounds retry behavior for transient backend failures.
type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	Multiplier     float64       `yaml:"multiplier"`
	Jitter         float64       `yaml:"jitter"`
}

// LimitConfig configures per-client rate limiting.
type LimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	Burst             int `yaml:"burst"`
}

// Default returns the baseline configuration before env/YAML overlay.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: defaultBaseURL,
			Timeout: 15 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: 200 * time.Millisecond,
			MaxBackoff:     5 * time.Second,
			Multiplier:     2.0,
			Jitter:         0.1,
		},
		Limits: LimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file at
// config/gateway.yaml, and the environment.
func Load() (Config, error) {
	return LoadFromPath(filepath.Join("config", "gateway.yaml"))
}

// LoadFromPath is Load with an explicit YAML path. A missing file is not an
// error; a malformed one is.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse gateway config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read gateway config %s: %w", path, err)
	}

	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv(EnvDebug); v == "1" || v == "true" {
		cfg.Debug = true
	}
	cfg.Backend.APIKey = os.Getenv(EnvAPIKey)
	cfg.Backend.SecretKeyPath = os.Getenv(EnvSecretKeyPath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks operational bounds. Credential presence is checked by the
// credential store, not here, so that a misconfigured credential degrades
// the service instead of preventing startup diagnostics.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base_url is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be at least 1")
	}
	if c.Retry.Multiplier < 1 {
		return fmt.Errorf("retry multiplier must be at least 1")
	}
	if c.Retry.InitialBackoff <= 0 || c.Retry.MaxBackoff < c.Retry.InitialBackoff {
		return fmt.Errorf("retry backoff bounds are invalid")
	}
	if c.Limits.RequestsPerSecond <= 0 || c.Limits.Burst <= 0 {
		return fmt.Errorf("rate limit values must be positive")
	}
	return nil
}
