package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentThreshold is the smallest absolute difference that produces an
// adjustment transaction.
var AdjustmentThreshold = decimal.NewFromFloat(0.01)

// AdjustBalanceCommand is a user's declaration of a wallet's true balance.
type AdjustBalanceCommand struct {
	NewBalance     decimal.Decimal
	CurrentBalance *decimal.Decimal // caller-computed balance, recomputed when nil
	Date           *time.Time       // must be today when set
}

// BalanceAdjustment is the outcome of an adjustment attempt.
type BalanceAdjustment struct {
	PreviousBalance    decimal.Decimal `json:"previousBalance"`
	NewBalance         decimal.Decimal `json:"newBalance"`
	Difference         decimal.Decimal `json:"difference"`
	TransactionCreated bool            `json:"transactionCreated"`
	Transaction        *Transaction    `json:"transaction,omitempty"`
}

// NeedsTransaction reports whether the difference is large enough to record.
func (a BalanceAdjustment) NeedsTransaction() bool {
	return a.Difference.Abs().GreaterThanOrEqual(AdjustmentThreshold)
}

// AdjustmentDescription renders "Balance adjustment: +50.00" style labels.
func AdjustmentDescription(difference decimal.Decimal) string {
	sign := "+"
	if difference.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("Balance adjustment: %s%s", sign, difference.Abs().StringFixed(2))
}

// WalletBalance is the read-only balance probe of a wallet.
type WalletBalance struct {
	WalletID          int64           `json:"walletId"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	TransactionsTotal decimal.Decimal `json:"transactionsTotal"`
}
