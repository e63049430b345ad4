package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a container of transactions with a starting balance. Its current
// balance is always derived, never stored.
type Wallet struct {
	WalletID       int64           `json:"id"`
	OwnerID        string          `json:"ownerId"`
	Name           string          `json:"name"`
	Description    *string         `json:"description"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrencyCode   string          `json:"currencyCode"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// WalletPermission is the access level a user holds on a wallet.
type WalletPermission string

const (
	PermissionNone  WalletPermission = ""
	PermissionRead  WalletPermission = "read"
	PermissionWrite WalletPermission = "write"
	PermissionAdmin WalletPermission = "admin"
)

func (p WalletPermission) rank() int {
	switch p {
	case PermissionRead:
		return 1
	case PermissionWrite:
		return 2
	case PermissionAdmin:
		return 3
	default:
		return 0
	}
}

// Allows reports whether holding p is enough for an action needing required.
// Permissions are ordered read < write < admin.
func (p WalletPermission) Allows(required WalletPermission) bool {
	return p.rank() > 0 && p.rank() >= required.rank()
}

// WalletAccess pairs a wallet with the caller's permission on it.
type WalletAccess struct {
	Wallet
	Permission WalletPermission `json:"permission"`
}
