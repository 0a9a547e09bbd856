package credentials

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relaedzc/simple-fireblocks-service/internal/config"
	gwerrors "github.com/relaedzc/simple-fireblocks-service/internal/errors"
)

func writeTestKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fireblocks_secret.key")
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(path, pemBytes, 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return path
}

func TestLoadValidCredential(t *testing.T) {
	path := writeTestKey(t)
	cred, err := Load(config.BackendConfig{APIKey: "api-key-1", SecretKeyPath: path})
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if cred.APIKey() != "api-key-1" {
		t.Fatalf("APIKey() = %q", cred.APIKey())
	}
	if cred.SigningKey() == nil {
		t.Fatalf("SigningKey() is nil")
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	_, err := Load(config.BackendConfig{SecretKeyPath: writeTestKey(t)})
	assertConfigError(t, err)
}

func TestLoadMissingKeyPath(t *testing.T) {
	_, err := Load(config.BackendConfig{APIKey: "api-key-1"})
	assertConfigError(t, err)
}

func TestLoadMissingKeyFile(t *testing.T) {
	_, err := Load(config.BackendConfig{
		APIKey:        "api-key-1",
		SecretKeyPath: filepath.Join(t.TempDir(), "missing.key"),
	})
	assertConfigError(t, err)
}

func TestLoadMalformedPEM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.key")
	if err := os.WriteFile(path, []byte("not a pem"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := Load(config.BackendConfig{APIKey: "api-key-1", SecretKeyPath: path})
	assertConfigError(t, err)
}

func TestCredentialRedactsOnPrint(t *testing.T) {
	cred, err := Load(config.BackendConfig{APIKey: "super-secret-key", SecretKeyPath: writeTestKey(t)})
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	for _, rendered := range []string{
		fmt.Sprintf("%v", cred),
		fmt.Sprintf("%s", cred),
		fmt.Sprintf("%#v", cred),
	} {
		if strings.Contains(rendered, "super-secret-key") {
			t.Fatalf("credential leaked into %q", rendered)
		}
	}
}

func assertConfigError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	e := gwerrors.AsError(err)
	if e.Kind != gwerrors.KindConfig {
		t.Fatalf("kind = %v, want config", e.Kind)
	}
	if e.Detail != "service misconfigured" {
		t.Fatalf("detail = %q, must stay generic", e.Detail)
	}
}
