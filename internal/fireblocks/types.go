package fireblocks

import "encoding/json"

// Backend wire types. Field names follow the custody API's camelCase
// contract; reshaping into the external contract happens in the
// normalize package.

// CreateVaultAccountRequest is the backend payload for vault account
// creation.
type CreateVaultAccountRequest struct {
	Name       string `json:"name"`
	HiddenOnUI bool   `json:"hiddenOnUI"`
	AutoFuel   bool   `json:"autoFuel"`
}

// VaultAccount is a backend vault account.
type VaultAccount struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	HiddenOnUI    *bool        `json:"hiddenOnUI,omitempty"`
	AutoFuel      *bool        `json:"autoFuel,omitempty"`
	CustomerRefID string       `json:"customerRefId,omitempty"`
	Assets        []VaultAsset `json:"assets,omitempty"`
}

// VaultAsset is a backend asset balance inside a vault account.
type VaultAsset struct {
	ID           string `json:"id"`
	Total        string `json:"total,omitempty"`
	Balance      string `json:"balance,omitempty"`
	Available    string `json:"available,omitempty"`
	Pending      string `json:"pending,omitempty"`
	Frozen       string `json:"frozen,omitempty"`
	LockedAmount string `json:"lockedAmount,omitempty"`
	Staked       string `json:"staked,omitempty"`
	BlockHeight  string `json:"blockHeight,omitempty"`
	BlockHash    string `json:"blockHash,omitempty"`
}

// Paging carries the backend's opaque pagination cursors. The gateway
// forwards them verbatim and never decodes them.
type Paging struct {
	Before *string `json:"before,omitempty"`
	After  *string `json:"after,omitempty"`
}

// VaultAccountsPage is the backend response for paged vault account
// listing. NextURL/PreviousURL are backend-internal and are dropped by the
// normalizer.
type VaultAccountsPage struct {
	Accounts    []VaultAccount `json:"accounts"`
	Paging      *Paging        `json:"paging,omitempty"`
	NextURL     string         `json:"nextUrl,omitempty"`
	PreviousURL string         `json:"previousUrl,omitempty"`
}

// VaultWallet is the backend response for wallet (vault asset) creation.
type VaultWallet struct {
	ID             string `json:"id"`
	Address        string `json:"address,omitempty"`
	LegacyAddress  string `json:"legacyAddress,omitempty"`
	Tag            string `json:"tag,omitempty"`
	EOSAccountName string `json:"eosAccountName,omitempty"`
}

// DepositAddress is a backend deposit address entry.
type DepositAddress struct {
	AssetID           string `json:"assetId"`
	Address           string `json:"address"`
	Tag               string `json:"tag,omitempty"`
	LegacyAddress     string `json:"legacyAddress,omitempty"`
	Description       string `json:"description,omitempty"`
	Type              string `json:"type,omitempty"`
	AddressFormat     string `json:"addressFormat,omitempty"`
	CustomerRefID     string `json:"customerRefId,omitempty"`
	EnterpriseAddress string `json:"enterpriseAddress,omitempty"`
	UserDefined       bool   `json:"userDefined,omitempty"`
}

// AddressesPage is the backend response for paged address listing.
type AddressesPage struct {
	Addresses []DepositAddress `json:"addresses"`
	Paging    *Paging          `json:"paging,omitempty"`
}

// TransferPeerPath identifies a transaction source or destination.
type TransferPeerPath struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// TransactionRequest is the backend payload for transaction creation.
// Optional fields are pointers so that absent values are omitted rather
// than sent as empty strings.
type TransactionRequest struct {
	AssetID         string            `json:"assetId"`
	Source          TransferPeerPath  `json:"source"`
	Destination     *TransferPeerPath `json:"destination,omitempty"`
	Amount          string            `json:"amount,omitempty"`
	Operation       string            `json:"operation,omitempty"`
	Note            *string           `json:"note,omitempty"`
	FeeLevel        *string           `json:"feeLevel,omitempty"`
	ExtraParameters json.RawMessage   `json:"extraParameters,omitempty"`
}

// TransactionResponse is the backend response for transaction creation.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	AssetID     string          `json:"assetId,omitempty"`
	Amount      string          `json:"amount,omitempty"`
	Source      json.RawMessage `json:"source,omitempty"`
	Destination json.RawMessage `json:"destination,omitempty"`
	Fee         string          `json:"fee,omitempty"`
	NetworkFee  string          `json:"networkFee,omitempty"`
	CreatedAt   int64           `json:"createdAt,omitempty"`
	LastUpdated int64           `json:"lastUpdated,omitempty"`
	TxHash      string          `json:"txHash,omitempty"`
	SubStatus   string          `json:"subStatus,omitempty"`
}

// EVMTokenCreateParams configures token deployment on EVM chains.
type EVMTokenCreateParams struct {
	ContractID           string           `json:"contractId"`
	DeployFunctionParams []ParameterValue `json:"deployFunctionParams,omitempty"`
}

// StellarRippleCreateParams configures token linking on Stellar/Ripple.
type StellarRippleCreateParams struct {
	IssuerAddress string `json:"issuerAddress"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
}

// ParameterValue is a named constructor argument for contract deployment.
type ParameterValue struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// CreateTokenRequest is the backend payload for token issuance. Exactly one
// of EVMParams / StellarRippleParams is set.
type CreateTokenRequest struct {
	VaultAccountID      string                     `json:"vaultAccountId"`
	AssetID             string                     `json:"assetId,omitempty"`
	BlockchainID        string                     `json:"blockchainId,omitempty"`
	DisplayName         string                     `json:"displayName,omitempty"`
	EVMParams           *EVMTokenCreateParams      `json:"evmParams,omitempty"`
	StellarRippleParams *StellarRippleCreateParams `json:"stellarRippleParams,omitempty"`
}

// TokenLink is the backend response for token issuance.
type TokenLink struct {
	ID          string `json:"id"`
	AssetID     string `json:"assetId,omitempty"`
	Status      string `json:"status"`
	DisplayName string `json:"displayName,omitempty"`
}
