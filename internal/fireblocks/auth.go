package fireblocks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/relaedzc/simple-fireblocks-service/internal/credentials"
)

const tokenLifetime = 30 * time.Second

// signer produces the per-request RS256 JWT the custody API requires.
// Each token is bound to the request path and a SHA-256 of the body, with
// a unique nonce, so tokens cannot be replayed across requests.
type signer struct {
	cred *credentials.Credential
}

func newSigner(cred *credentials.Credential) *signer {
	return &signer{cred: cred}
}

// token signs a JWT for one request attempt. A fresh nonce is issued per
// attempt, so retried calls never reuse a token.
func (s *signer) token(uri string, body []byte) (string, error) {
	bodyHash := sha256.Sum256(body)
	now := time.Now()

	claims := jwt.MapClaims{
		"uri":      uri,
		"nonce":    uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
		"sub":      s.cred.APIKey(),
		"bodyHash": hex.EncodeToString(bodyHash[:]),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.cred.SigningKey())
	if err != nil {
		return "", fmt.Errorf("sign request token: %w", err)
	}
	return signed, nil
}

func (s *signer) apiKey() string { return s.cred.APIKey() }
