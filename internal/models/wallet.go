package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet mirrors a row of the wallets table.
type Wallet struct {
	WalletID       int64           `db:"id"`
	OwnerID        string          `db:"owner_id"`
	Name           string          `db:"name"`
	Description    *string         `db:"description"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrencyCode   string          `db:"currency_code"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// WalletAccess is a wallet row with the permission resolved for one user.
type WalletAccess struct {
	Wallet
	Permission string `db:"permission"`
}
