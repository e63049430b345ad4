package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors a row of the transactions table, joined with the
// category name and color.
type Transaction struct {
	TransactionID     int64           `db:"id"`
	WalletID          int64           `db:"wallet_id"`
	Type              string          `db:"type"`
	Amount            decimal.Decimal `db:"amount"`
	Description       *string         `db:"description"`
	CategoryID        *int64          `db:"category_id"`
	CategoryName      *string         `db:"category_name"`
	CategoryColor     *string         `db:"category_color"`
	Date              time.Time       `db:"date"`
	IsRecurring       bool            `db:"is_recurring"`
	RecurrenceType    *string         `db:"recurrence_type"`
	RecurrenceEndDate *time.Time      `db:"recurrence_end_date"`
	CreatedBy         string          `db:"created_by"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}
