// Package fireblocks implements the custody API client: an authenticated
// HTTPS client with a narrow, typed capability surface, a race-free lazy
// singleton factory, and a bounded retry policy for transient failures.
package fireblocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/relaedzc/simple-fireblocks-service/internal/config"
	"github.com/relaedzc/simple-fireblocks-service/internal/credentials"
	gwerrors "github.com/relaedzc/simple-fireblocks-service/internal/errors"
	"github.com/relaedzc/simple-fireblocks-service/internal/metrics"
)

const maxResponseBody = 8 << 20 // 8MiB
const maxErrorBody = 4096

// Client issues authenticated calls against the custody API. It is safe for
// concurrent use; all methods are stateless beyond the shared HTTP client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     *signer
	retry      config.RetryConfig
	timeout    time.Duration
}

// New creates a client bound to the given credential. The credential is
// held only by the signer and never serialized.
func New(cfg config.BackendConfig, retry config.RetryConfig, cred *credentials.Credential) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend base URL must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("backend base URL scheme must be http or https")
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		signer:  newSigner(cred),
		retry:   retry,
		timeout: cfg.Timeout,
	}, nil
}

// =============================================================================
// Capability surface
// =============================================================================

// CreateVaultAccount creates a new vault account.
func (c *Client) CreateVaultAccount(ctx context.Context, req CreateVaultAccountRequest) (*VaultAccount, error) {
	var out VaultAccount
	if err := c.do(ctx, "create_vault_account", http.MethodPost, "/vault/accounts", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVaultAccount fetches a vault account by ID.
func (c *Client) GetVaultAccount(ctx context.Context, vaultAccountID string) (*VaultAccount, error) {
	var out VaultAccount
	path := "/vault/accounts/" + url.PathEscape(vaultAccountID)
	if err := c.do(ctx, "get_vault_account", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVaultAccountsPaged lists vault accounts with filtering and cursor
// pagination. Cursors in query are forwarded verbatim.
func (c *Client) GetVaultAccountsPaged(ctx context.Context, query url.Values) (*VaultAccountsPage, error) {
	var out VaultAccountsPage
	if err := c.do(ctx, "list_vault_accounts", http.MethodGet, "/vault/accounts_paged", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateVaultWallet activates an asset wallet inside a vault account.
func (c *Client) CreateVaultWallet(ctx context.Context, vaultAccountID, assetID string) (*VaultWallet, error) {
	var out VaultWallet
	path := "/vault/accounts/" + url.PathEscape(vaultAccountID) + "/" + url.PathEscape(assetID)
	if err := c.do(ctx, "create_vault_wallet", http.MethodPost, path, nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVaultAsset fetches the balance of one asset in a vault account.
func (c *Client) GetVaultAsset(ctx context.Context, vaultAccountID, assetID string) (*VaultAsset, error) {
	var out VaultAsset
	path := "/vault/accounts/" + url.PathEscape(vaultAccountID) + "/" + url.PathEscape(assetID)
	if err := c.do(ctx, "get_vault_asset", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAssetAddressesPaged lists deposit addresses for an asset in a vault
// account with cursor pagination.
func (c *Client) GetAssetAddressesPaged(ctx context.Context, vaultAccountID, assetID string, query url.Values) (*AddressesPage, error) {
	var out AddressesPage
	path := "/vault/accounts/" + url.PathEscape(vaultAccountID) + "/" + url.PathEscape(assetID) + "/addresses_paginated"
	if err := c.do(ctx, "get_asset_addresses", http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTransaction submits a transaction (transfer or raw operation).
func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*TransactionResponse, error) {
	var out TransactionResponse
	if err := c.do(ctx, "create_transaction", http.MethodPost, "/transactions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IssueToken creates or links a token.
func (c *Client) IssueToken(ctx context.Context, req CreateTokenRequest) (*TokenLink, error) {
	var out TokenLink
	if err := c.do(ctx, "issue_token", http.MethodPost, "/tokenization/tokens", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// Transport
// =============================================================================

// do executes one backend call with the retry policy. Only the HTTP call
// itself is retried; marshaling and decoding run once. A dispatched attempt
// runs to completion even if the caller disconnects, so partially-submitted
// operations are never left ambiguously cancelled; caller cancellation is
// honored between attempts only.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	uri := path
	if len(query) > 0 {
		uri = path + "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return gwerrors.Unknown(fmt.Errorf("marshal request body: %w", err))
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			metrics.RecordBackendRetry(operation)
			select {
			case <-ctx.Done():
				return gwerrors.AsError(lastErr)
			case <-time.After(backoffFor(c.retry, attempt)):
			}
		}

		err := c.attempt(ctx, method, uri, payload, out)
		if err == nil {
			metrics.RecordBackendAttempt(operation, "success")
			return nil
		}

		e := gwerrors.AsError(err)
		metrics.RecordBackendAttempt(operation, e.Kind.String())
		lastErr = e
		if !e.Retryable() {
			return e
		}
	}
	return gwerrors.AsError(lastErr)
}

// attempt performs a single signed HTTP exchange and classifies its
// outcome. The attempt context is detached from caller cancellation but
// bounded by the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, method, uri string, payload []byte, out any) error {
	attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, c.baseURL+uri, bodyReader)
	if err != nil {
		return gwerrors.Unknown(fmt.Errorf("create request: %w", err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.signer.token(uri, payload)
	if err != nil {
		return gwerrors.Unknown(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-API-Key", c.signer.apiKey())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
			return nil
		}
		dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody))
		if err := dec.Decode(out); err != nil {
			return gwerrors.Unknown(fmt.Errorf("decode backend response: %w", err))
		}
		return nil
	}

	return classifyStatus(resp)
}

// classifyNetworkError maps transport failures into the taxonomy. Timeouts
// and connection failures are transient.
func classifyNetworkError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return gwerrors.Transient("backend timeout", err)
	}
	return gwerrors.Transient("backend unreachable", err)
}

// classifyStatus maps backend HTTP failures into the taxonomy. 429 and 5xx
// are transient; other 4xx carry the backend's message through. Raw bodies
// are never echoed beyond the extracted message.
func classifyStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return gwerrors.Transient(fmt.Sprintf("backend returned %d", resp.StatusCode), nil)
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return gwerrors.Permanent(resp.StatusCode, backendMessage(resp.Body))
	}
	return gwerrors.Unknown(fmt.Errorf("unexpected backend status %d", resp.StatusCode))
}

// backendMessage extracts the backend's error message from a bounded read
// of the body, falling back to a generic summary.
func backendMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return "backend rejected request"
	}
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return "backend rejected request"
}
