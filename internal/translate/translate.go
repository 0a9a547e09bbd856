// Package translate validates inbound operation requests and maps them
// into backend call parameters. External field names (snake_case bodies,
// camelCase query parameters) are reshaped into the backend contract, and
// absent optional fields are omitted entirely — never sent as null or
// empty, since the backend distinguishes an absent filter from an empty
// one. All functions are pure.
package translate

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	gwerrors "github.com/relaedzc/simple-fireblocks-service/internal/errors"
	"github.com/relaedzc/simple-fireblocks-service/internal/fireblocks"
)

const (
	minLimit     = 1
	maxLimit     = 500
	defaultLimit = 100
)

// =============================================================================
// Vault accounts
// =============================================================================

// CreateVaultAccountInput is the external payload for vault account
// creation.
type CreateVaultAccountInput struct {
	Name       string `json:"name"`
	HiddenOnUI bool   `json:"hidden_on_ui"`
	AutoFuel   bool   `json:"auto_fuel"`
}

// CreateVaultAccount validates the input and maps it to the backend
// request.
func CreateVaultAccount(in CreateVaultAccountInput) (fireblocks.CreateVaultAccountRequest, error) {
	if strings.TrimSpace(in.Name) == "" {
		return fireblocks.CreateVaultAccountRequest{}, gwerrors.Validation("name must be a non-empty string")
	}
	return fireblocks.CreateVaultAccountRequest{
		Name:       in.Name,
		HiddenOnUI: in.HiddenOnUI,
		AutoFuel:   in.AutoFuel,
	}, nil
}

// ListVaultAccounts validates the external query parameters and builds the
// backend query. Filters left unset by the caller are omitted; cursors are
// forwarded verbatim; tagIds is split from its comma-separated form into
// an ordered backend list.
func ListVaultAccounts(params url.Values) (url.Values, error) {
	out := url.Values{}

	for _, key := range []string{"namePrefix", "nameSuffix", "assetId", "orderBy", "before", "after"} {
		if v := params.Get(key); v != "" {
			out.Set(key, v)
		}
	}

	if v := params.Get("minAmountThreshold"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil || threshold < 0 {
			return nil, gwerrors.Validation("minAmountThreshold must be a non-negative number")
		}
		out.Set("minAmountThreshold", v)
	}

	if v := params.Get("orderBy"); v != "" && v != "ASC" && v != "DESC" {
		return nil, gwerrors.Validation("orderBy must be ASC or DESC")
	}

	limit, err := parseLimit(params.Get("limit"))
	if err != nil {
		return nil, err
	}
	out.Set("limit", strconv.Itoa(limit))

	if v := params.Get("tagIds"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				return nil, gwerrors.Validation("tagIds must not contain empty entries")
			}
			out.Add("tagIds", tag)
		}
	}

	return out, nil
}

// =============================================================================
// Vault wallets and assets
// =============================================================================

// CreateVaultWalletInput is the external payload for wallet creation.
type CreateVaultWalletInput struct {
	VaultAccountID string `json:"vault_account_id"`
	AssetID        string `json:"asset_id"`
}

// CreateVaultWallet validates wallet creation input.
func CreateVaultWallet(in CreateVaultWalletInput) (CreateVaultWalletInput, error) {
	if strings.TrimSpace(in.VaultAccountID) == "" {
		return CreateVaultWalletInput{}, gwerrors.Validation("vault_account_id must be a non-empty string")
	}
	if strings.TrimSpace(in.AssetID) == "" {
		return CreateVaultWalletInput{}, gwerrors.Validation("asset_id must be a non-empty string")
	}
	return in, nil
}

// VaultAccountPath validates the vault account path identifier.
func VaultAccountPath(vaultAccountID string) error {
	if strings.TrimSpace(vaultAccountID) == "" {
		return gwerrors.Validation("vault_account_id must be a non-empty string")
	}
	return nil
}

// VaultAssetPath validates the path identifiers shared by the asset
// balance and address listing operations.
func VaultAssetPath(vaultAccountID, assetID string) error {
	if strings.TrimSpace(vaultAccountID) == "" {
		return gwerrors.Validation("vault_account_id must be a non-empty string")
	}
	if strings.TrimSpace(assetID) == "" {
		return gwerrors.Validation("asset_id must be a non-empty string")
	}
	return nil
}

// AssetAddresses validates the pagination query for address listing and
// builds the backend query.
func AssetAddresses(params url.Values) (url.Values, error) {
	out := url.Values{}

	for _, key := range []string{"before", "after"} {
		if v := params.Get(key); v != "" {
			out.Set(key, v)
		}
	}

	limit, err := parseLimit(params.Get("limit"))
	if err != nil {
		return nil, err
	}
	out.Set("limit", strconv.Itoa(limit))

	return out, nil
}

// =============================================================================
// Transactions
// =============================================================================

// CreateTransferInput is the external payload for a vault-to-vault
// transfer.
type CreateTransferInput struct {
	AssetID                   string  `json:"asset_id"`
	SourceVaultAccountID      string  `json:"source_vault_account_id"`
	DestinationVaultAccountID string  `json:"destination_vault_account_id"`
	Amount                    float64 `json:"amount"`
	Note                      *string `json:"note,omitempty"`
	FeeLevel                  *string `json:"fee_level,omitempty"`
}

// CreateTransfer validates the transfer and maps it to a backend
// transaction request. Optional note/fee level stay omitted when absent.
func CreateTransfer(in CreateTransferInput) (fireblocks.TransactionRequest, error) {
	if strings.TrimSpace(in.AssetID) == "" {
		return fireblocks.TransactionRequest{}, gwerrors.Validation("asset_id must be a non-empty string")
	}
	if strings.TrimSpace(in.SourceVaultAccountID) == "" {
		return fireblocks.TransactionRequest{}, gwerrors.Validation("source_vault_account_id must be a non-empty string")
	}
	if strings.TrimSpace(in.DestinationVaultAccountID) == "" {
		return fireblocks.TransactionRequest{}, gwerrors.Validation("destination_vault_account_id must be a non-empty string")
	}
	if in.Amount <= 0 {
		return fireblocks.TransactionRequest{}, gwerrors.Validation("amount must be greater than zero")
	}
	if in.FeeLevel != nil {
		switch *in.FeeLevel {
		case "HIGH", "MEDIUM", "LOW":
		default:
			return fireblocks.TransactionRequest{}, gwerrors.Validation("fee_level must be HIGH, MEDIUM or LOW")
		}
	}

	return fireblocks.TransactionRequest{
		AssetID:     in.AssetID,
		Source:      fireblocks.TransferPeerPath{Type: "VAULT_ACCOUNT", ID: in.SourceVaultAccountID},
		Destination: &fireblocks.TransferPeerPath{Type: "VAULT_ACCOUNT", ID: in.DestinationVaultAccountID},
		Amount:      strconv.FormatFloat(in.Amount, 'f', -1, 64),
		Operation:   "TRANSFER",
		Note:        in.Note,
		FeeLevel:    in.FeeLevel,
	}, nil
}

// SubmitXRPLTransactionInput is the external payload for XRPL transaction
// submission. Params is forwarded to the backend untouched.
type SubmitXRPLTransactionInput struct {
	AssetID         string          `json:"assetId"`
	TransactionType string          `json:"transactionType"`
	VaultAccountID  string          `json:"vaultAccountId"`
	Params          json.RawMessage `json:"params,omitempty"`
}

// SubmitXRPLTransaction validates the submission and maps it to a backend
// transaction request carrying the type-specific parameters.
func SubmitXRPLTransaction(in SubmitXRPLTransactionInput) (fireblocks.TransactionRequest, error) {
	if strings.TrimSpace(in.AssetID) == "" {
		return fireblocks.TransactionRequest{}, gwerrors.Validation("assetId must be a non-empty string")
	}
	if strings.TrimSpace(in.VaultAccountID) == "" {
		return fireblocks.TransactionRequest{}, gwerrors.Validation("vaultAccountId must be a non-empty string")
	}
	if strings.TrimSpace(in.TransactionType) == "" {
		return fireblocks.TransactionRequest{}, gwerrors.Validation("transactionType must be a non-empty string")
	}

	return fireblocks.TransactionRequest{
		AssetID:         in.AssetID,
		Source:          fireblocks.TransferPeerPath{Type: "VAULT_ACCOUNT", ID: in.VaultAccountID},
		Operation:       in.TransactionType,
		ExtraParameters: in.Params,
	}, nil
}

// =============================================================================
// Tokens
// =============================================================================

// EVMParamsInput configures EVM token deployment.
type EVMParamsInput struct {
	ContractID           string                `json:"contract_id"`
	DeployFunctionParams []ParameterValueInput `json:"deploy_function_params,omitempty"`
}

// ParameterValueInput is a named constructor argument for contract
// deployment.
type ParameterValueInput struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// StellarRippleParamsInput configures Stellar/Ripple token linking.
type StellarRippleParamsInput struct {
	IssuerAddress string `json:"issuer_address"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
}

// CreateTokenInput is the external payload for token issuance.
type CreateTokenInput struct {
	VaultAccountID      string                    `json:"vault_account_id"`
	AssetID             string                    `json:"asset_id,omitempty"`
	BlockchainID        string                    `json:"blockchain_id,omitempty"`
	DisplayName         string                    `json:"display_name,omitempty"`
	EVMParams           *EVMParamsInput           `json:"evm_params,omitempty"`
	StellarRippleParams *StellarRippleParamsInput `json:"stellar_ripple_params,omitempty"`
}

// CreateToken validates token issuance input and maps it to the backend
// request. Exactly one parameter family must be present.
func CreateToken(in CreateTokenInput) (fireblocks.CreateTokenRequest, error) {
	if strings.TrimSpace(in.VaultAccountID) == "" {
		return fireblocks.CreateTokenRequest{}, gwerrors.Validation("vault_account_id must be a non-empty string")
	}
	if (in.EVMParams == nil) == (in.StellarRippleParams == nil) {
		return fireblocks.CreateTokenRequest{}, gwerrors.Validation("exactly one of evm_params or stellar_ripple_params must be provided")
	}

	out := fireblocks.CreateTokenRequest{
		VaultAccountID: in.VaultAccountID,
		AssetID:        in.AssetID,
		BlockchainID:   in.BlockchainID,
		DisplayName:    in.DisplayName,
	}

	if in.EVMParams != nil {
		if strings.TrimSpace(in.EVMParams.ContractID) == "" {
			return fireblocks.CreateTokenRequest{}, gwerrors.Validation("evm_params.contract_id must be a non-empty string")
		}
		params := &fireblocks.EVMTokenCreateParams{ContractID: in.EVMParams.ContractID}
		for _, p := range in.EVMParams.DeployFunctionParams {
			params.DeployFunctionParams = append(params.DeployFunctionParams, fireblocks.ParameterValue{
				Name:  p.Name,
				Type:  p.Type,
				Value: p.Value,
			})
		}
		out.EVMParams = params
		return out, nil
	}

	sr := in.StellarRippleParams
	if strings.TrimSpace(sr.IssuerAddress) == "" || strings.TrimSpace(sr.Symbol) == "" || strings.TrimSpace(sr.Name) == "" {
		return fireblocks.CreateTokenRequest{}, gwerrors.Validation("stellar_ripple_params requires issuer_address, symbol and name")
	}
	out.StellarRippleParams = &fireblocks.StellarRippleCreateParams{
		IssuerAddress: sr.IssuerAddress,
		Symbol:        sr.Symbol,
		Name:          sr.Name,
	}
	return out, nil
}

// parseLimit bounds the page size. An absent limit defaults to 100.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, gwerrors.Validation("limit must be an integer")
	}
	if limit < minLimit || limit > maxLimit {
		return 0, gwerrors.Validationf("limit must be between %d and %d", minLimit, maxLimit)
	}
	return limit, nil
}
