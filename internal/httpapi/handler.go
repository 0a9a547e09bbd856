// Package httpapi binds external operations to their translate → client →
// normalize pipelines. It holds dispatch only; validation lives in
// translate, backend access in fireblocks, reshaping in normalize.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/relaedzc/simple-fireblocks-service/internal/fireblocks"
	"github.com/relaedzc/simple-fireblocks-service/internal/httputil"
	"github.com/relaedzc/simple-fireblocks-service/internal/logging"
	"github.com/relaedzc/simple-fireblocks-service/internal/normalize"
	"github.com/relaedzc/simple-fireblocks-service/internal/translate"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "fireblocks-service"

// Handler dispatches gateway operations.
type Handler struct {
	factory *fireblocks.Factory
	logger  *logging.Logger
	version string
}

// New creates the operation handler. The factory is injected so tests can
// substitute a backend.
func New(factory *fireblocks.Factory, logger *logging.Logger, version string) *Handler {
	return &Handler{factory: factory, logger: logger, version: version}
}

// Register mounts all operations on the router. Adding an operation means
// adding a route here plus its translate/normalize pair; existing routes
// are untouched.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/vault-accounts", h.handleCreateVaultAccount).Methods(http.MethodPost)
	r.HandleFunc("/vault-accounts", h.handleListVaultAccounts).Methods(http.MethodGet)
	r.HandleFunc("/vault-accounts/{vault_account_id}", h.handleGetVaultAccount).Methods(http.MethodGet)
	r.HandleFunc("/vault-wallets", h.handleCreateVaultWallet).Methods(http.MethodPost)
	r.HandleFunc("/vault-assets/{vault_account_id}/{asset_id}", h.handleGetVaultAsset).Methods(http.MethodGet)
	r.HandleFunc("/vault-assets/{vault_account_id}/{asset_id}/addresses", h.handleGetAssetAddresses).Methods(http.MethodGet)
	r.HandleFunc("/transactions", h.handleCreateTransfer).Methods(http.MethodPost)
	r.HandleFunc("/xrpl-transactions", h.handleSubmitXRPLTransaction).Methods(http.MethodPost)
	r.HandleFunc("/tokens", h.handleIssueToken).Methods(http.MethodPost)
}

// handleHealth reports liveness. A FAILED client factory degrades the
// status but keeps the endpoint at 200, so operators can tell "up but
// misconfigured" from "down".
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if h.factory.State() == fireblocks.StateFailed {
		status = "degraded"
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"service": ServiceName,
		"version": h.version,
	})
}

func (h *Handler) handleCreateVaultAccount(w http.ResponseWriter, r *http.Request) {
	var input translate.CreateVaultAccountInput
	if !httputil.DecodeJSON(w, r, &input) {
		return
	}
	req, err := translate.CreateVaultAccount(input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "create vault account", err)
		httputil.WriteError(w, err)
		return
	}

	account, err := client.CreateVaultAccount(r.Context(), req)
	if err != nil {
		h.fail(r, "create vault account", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, normalize.NewVaultAccount(account))
}

func (h *Handler) handleListVaultAccounts(w http.ResponseWriter, r *http.Request) {
	query, err := translate.ListVaultAccounts(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "list vault accounts", err)
		httputil.WriteError(w, err)
		return
	}

	page, err := client.GetVaultAccountsPaged(r.Context(), query)
	if err != nil {
		h.fail(r, "list vault accounts", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, normalize.NewVaultAccountsPage(page))
}

func (h *Handler) handleGetVaultAccount(w http.ResponseWriter, r *http.Request) {
	vaultAccountID := mux.Vars(r)["vault_account_id"]
	if err := translate.VaultAccountPath(vaultAccountID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "get vault account", err)
		httputil.WriteError(w, err)
		return
	}

	account, err := client.GetVaultAccount(r.Context(), vaultAccountID)
	if err != nil {
		h.fail(r, "get vault account", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, normalize.NewVaultAccount(account))
}

func (h *Handler) handleCreateVaultWallet(w http.ResponseWriter, r *http.Request) {
	var input translate.CreateVaultWalletInput
	if !httputil.DecodeJSON(w, r, &input) {
		return
	}
	input, err := translate.CreateVaultWallet(input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "create vault wallet", err)
		httputil.WriteError(w, err)
		return
	}

	wallet, err := client.CreateVaultWallet(r.Context(), input.VaultAccountID, input.AssetID)
	if err != nil {
		h.fail(r, "create vault wallet", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, normalize.NewVaultWallet(wallet))
}

func (h *Handler) handleGetVaultAsset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vaultAccountID, assetID := vars["vault_account_id"], vars["asset_id"]
	if err := translate.VaultAssetPath(vaultAccountID, assetID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "get vault asset", err)
		httputil.WriteError(w, err)
		return
	}

	asset, err := client.GetVaultAsset(r.Context(), vaultAccountID, assetID)
	if err != nil {
		h.fail(r, "get vault asset", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, normalize.NewVaultAsset(asset))
}

func (h *Handler) handleGetAssetAddresses(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vaultAccountID, assetID := vars["vault_account_id"], vars["asset_id"]
	if err := translate.VaultAssetPath(vaultAccountID, assetID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	query, err := translate.AssetAddresses(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "get asset addresses", err)
		httputil.WriteError(w, err)
		return
	}

	page, err := client.GetAssetAddressesPaged(r.Context(), vaultAccountID, assetID, query)
	if err != nil {
		h.fail(r, "get asset addresses", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, normalize.NewAddressesPage(page))
}

func (h *Handler) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	var input translate.CreateTransferInput
	if !httputil.DecodeJSON(w, r, &input) {
		return
	}
	req, err := translate.CreateTransfer(input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "create transfer", err)
		httputil.WriteError(w, err)
		return
	}

	tx, err := client.CreateTransaction(r.Context(), req)
	if err != nil {
		h.fail(r, "create transfer", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, normalize.NewTransaction(tx))
}

func (h *Handler) handleSubmitXRPLTransaction(w http.ResponseWriter, r *http.Request) {
	var input translate.SubmitXRPLTransactionInput
	if !httputil.DecodeJSON(w, r, &input) {
		return
	}
	req, err := translate.SubmitXRPLTransaction(input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "submit xrpl transaction", err)
		httputil.WriteError(w, err)
		return
	}

	tx, err := client.CreateTransaction(r.Context(), req)
	if err != nil {
		h.fail(r, "submit xrpl transaction", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, normalize.NewSubmission(tx))
}

func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var input translate.CreateTokenInput
	if !httputil.DecodeJSON(w, r, &input) {
		return
	}
	req, err := translate.CreateToken(input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	client, err := h.factory.Client()
	if err != nil {
		h.fail(r, "issue token", err)
		httputil.WriteError(w, err)
		return
	}

	token, err := client.IssueToken(r.Context(), req)
	if err != nil {
		h.fail(r, "issue token", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, normalize.NewToken(token))
}

// fail logs a classified failure with its trace ID. The error's Detail is
// already safe; raw causes stay out of the response.
func (h *Handler) fail(r *http.Request, operation string, err error) {
	h.logger.Warn("operation failed",
		zap.String("trace_id", logging.TraceID(r.Context())),
		zap.String("operation", operation),
		zap.Error(err),
	)
}
