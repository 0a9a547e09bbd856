// Package normalize reshapes backend responses into the external contract.
// List-bearing operations always produce the {data:{...,paging},statusCode}
// envelope with both cursor keys present (null when the backend did not
// paginate), so callers never special-case unpaginated backends.
// Backend-internal fields (customer reference IDs, raw pagination URLs,
// chain-specific account names) are dropped here, never forwarded.
package normalize

import (
	"encoding/json"
	"net/http"

	"github.com/relaedzc/simple-fireblocks-service/internal/fireblocks"
)

// Envelope is the uniform success wrapper for list and submit operations.
type Envelope struct {
	Data       any `json:"data"`
	StatusCode int `json:"statusCode"`
}

// Paging always carries both cursor keys. Cursors are opaque and forwarded
// verbatim.
type Paging struct {
	Before *string `json:"before"`
	After  *string `json:"after"`
}

func paging(p *fireblocks.Paging) Paging {
	if p == nil {
		return Paging{}
	}
	return Paging{Before: p.Before, After: p.After}
}

// =============================================================================
// Vault accounts
// =============================================================================

// VaultAccount is the external shape of a vault account.
type VaultAccount struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	HiddenOnUI *bool        `json:"hidden_on_ui"`
	AutoFuel   *bool        `json:"auto_fuel"`
	Assets     []VaultAsset `json:"assets,omitempty"`
}

// VaultAsset is the external shape of an asset balance.
type VaultAsset struct {
	ID           string `json:"id"`
	Total        string `json:"total,omitempty"`
	Balance      string `json:"balance,omitempty"`
	Available    string `json:"available,omitempty"`
	Pending      string `json:"pending,omitempty"`
	Frozen       string `json:"frozen,omitempty"`
	LockedAmount string `json:"locked_amount,omitempty"`
	Staked       string `json:"staked,omitempty"`
	BlockHeight  string `json:"block_height,omitempty"`
	BlockHash    string `json:"block_hash,omitempty"`
}

// NewVaultAccount reshapes a backend vault account, dropping the internal
// customer reference ID.
func NewVaultAccount(in *fireblocks.VaultAccount) VaultAccount {
	out := VaultAccount{
		ID:         in.ID,
		Name:       in.Name,
		HiddenOnUI: in.HiddenOnUI,
		AutoFuel:   in.AutoFuel,
	}
	for _, a := range in.Assets {
		out.Assets = append(out.Assets, NewVaultAsset(&a))
	}
	return out
}

// NewVaultAsset reshapes a backend asset balance.
func NewVaultAsset(in *fireblocks.VaultAsset) VaultAsset {
	return VaultAsset{
		ID:           in.ID,
		Total:        in.Total,
		Balance:      in.Balance,
		Available:    in.Available,
		Pending:      in.Pending,
		Frozen:       in.Frozen,
		LockedAmount: in.LockedAmount,
		Staked:       in.Staked,
		BlockHeight:  in.BlockHeight,
		BlockHash:    in.BlockHash,
	}
}

// VaultAccountList is the external list payload.
type VaultAccountList struct {
	Accounts []VaultAccount `json:"accounts"`
	Paging   Paging         `json:"paging"`
}

// NewVaultAccountsPage wraps a backend account page in the envelope. The
// backend's nextUrl/previousUrl are internal and dropped.
func NewVaultAccountsPage(in *fireblocks.VaultAccountsPage) Envelope {
	accounts := make([]VaultAccount, 0, len(in.Accounts))
	for i := range in.Accounts {
		accounts = append(accounts, NewVaultAccount(&in.Accounts[i]))
	}
	return Envelope{
		Data:       VaultAccountList{Accounts: accounts, Paging: paging(in.Paging)},
		StatusCode: http.StatusOK,
	}
}

// =============================================================================
// Wallets and addresses
// =============================================================================

// VaultWallet is the external shape of a created wallet. The backend's
// chain-specific account name is dropped.
type VaultWallet struct {
	ID            string `json:"id"`
	Address       string `json:"address"`
	LegacyAddress string `json:"legacy_address"`
	Tag           string `json:"tag"`
}

// NewVaultWallet reshapes a backend wallet creation response.
func NewVaultWallet(in *fireblocks.VaultWallet) VaultWallet {
	return VaultWallet{
		ID:            in.ID,
		Address:       in.Address,
		LegacyAddress: in.LegacyAddress,
		Tag:           in.Tag,
	}
}

// DepositAddress is the external shape of a deposit address. Customer
// reference and enterprise addresses are internal and dropped.
type DepositAddress struct {
	AssetID       string `json:"asset_id"`
	Address       string `json:"address"`
	Tag           string `json:"tag,omitempty"`
	LegacyAddress string `json:"legacy_address,omitempty"`
	Description   string `json:"description,omitempty"`
	Type          string `json:"type,omitempty"`
	AddressFormat string `json:"address_format,omitempty"`
	UserDefined   bool   `json:"user_defined,omitempty"`
}

// AddressList is the external address list payload.
type AddressList struct {
	Addresses []DepositAddress `json:"addresses"`
	Paging    Paging           `json:"paging"`
}

// NewAddressesPage wraps a backend address page in the envelope.
func NewAddressesPage(in *fireblocks.AddressesPage) Envelope {
	addresses := make([]DepositAddress, 0, len(in.Addresses))
	for _, a := range in.Addresses {
		addresses = append(addresses, DepositAddress{
			AssetID:       a.AssetID,
			Address:       a.Address,
			Tag:           a.Tag,
			LegacyAddress: a.LegacyAddress,
			Description:   a.Description,
			Type:          a.Type,
			AddressFormat: a.AddressFormat,
			UserDefined:   a.UserDefined,
		})
	}
	return Envelope{
		Data:       AddressList{Addresses: addresses, Paging: paging(in.Paging)},
		StatusCode: http.StatusOK,
	}
}

// =============================================================================
// Transactions and tokens
// =============================================================================

// Transaction is the external shape of a submitted transaction.
type Transaction struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	AssetID     string          `json:"asset_id,omitempty"`
	Amount      string          `json:"amount,omitempty"`
	Source      json.RawMessage `json:"source,omitempty"`
	Destination json.RawMessage `json:"destination,omitempty"`
	Fee         string          `json:"fee,omitempty"`
	NetworkFee  string          `json:"network_fee,omitempty"`
	CreatedAt   int64           `json:"created_at,omitempty"`
	LastUpdated int64           `json:"last_updated,omitempty"`
	TxHash      string          `json:"tx_hash,omitempty"`
	SubStatus   string          `json:"sub_status,omitempty"`
}

// NewTransaction reshapes a backend transaction response.
func NewTransaction(in *fireblocks.TransactionResponse) Transaction {
	return Transaction{
		ID:          in.ID,
		Status:      in.Status,
		AssetID:     in.AssetID,
		Amount:      in.Amount,
		Source:      in.Source,
		Destination: in.Destination,
		Fee:         in.Fee,
		NetworkFee:  in.NetworkFee,
		CreatedAt:   in.CreatedAt,
		LastUpdated: in.LastUpdated,
		TxHash:      in.TxHash,
		SubStatus:   in.SubStatus,
	}
}

// NewSubmission wraps a submitted transaction in the envelope with a 201
// status.
func NewSubmission(in *fireblocks.TransactionResponse) Envelope {
	return Envelope{Data: NewTransaction(in), StatusCode: http.StatusCreated}
}

// Token is the external shape of an issued token link.
type Token struct {
	ID          string `json:"id"`
	AssetID     string `json:"asset_id,omitempty"`
	Status      string `json:"status"`
	DisplayName string `json:"display_name,omitempty"`
}

// NewToken reshapes a backend token link.
func NewToken(in *fireblocks.TokenLink) Token {
	return Token{
		ID:          in.ID,
		AssetID:     in.AssetID,
		Status:      in.Status,
		DisplayName: in.DisplayName,
	}
}
