// Package credentials loads the custody API credential pair: an API key
// from the environment and a PEM-encoded RSA signing key from a file. The
// two are sourced from distinct configuration keys and the parsed material
// is held only in memory.
package credentials

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/relaedzc/simple-fireblocks-service/internal/config"
	gwerrors "github.com/relaedzc/simple-fireblocks-service/internal/errors"
)

// Credential is the loaded API key + signing key pair. It is immutable for
// the process lifetime.
type Credential struct {
	apiKey     string
	signingKey *rsa.PrivateKey
}

// APIKey returns the backend API key.
func (c *Credential) APIKey() string { return c.apiKey }

// SigningKey returns the parsed RSA private key for request signing.
func (c *Credential) SigningKey() *rsa.PrivateKey { return c.signingKey }

// String redacts the credential. Guards against accidental logging.
func (c *Credential) String() string { return "credential(redacted)" }

// GoString redacts the credential under %#v as well.
func (c *Credential) GoString() string { return c.String() }

// Load reads and validates both credential sources. A missing or malformed
// credential is a deployment error: it fails fast as a ConfigError and is
// never retried.
func Load(cfg config.BackendConfig) (*Credential, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, gwerrors.Config(fmt.Errorf("%s is not set", config.EnvAPIKey))
	}

	path := strings.TrimSpace(cfg.SecretKeyPath)
	if path == "" {
		return nil, gwerrors.Config(fmt.Errorf("%s is not set", config.EnvSecretKeyPath))
	}

	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, gwerrors.Config(fmt.Errorf("read signing key: %w", err))
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, gwerrors.Config(fmt.Errorf("parse signing key PEM: %w", err))
	}

	return &Credential{apiKey: apiKey, signingKey: key}, nil
}
