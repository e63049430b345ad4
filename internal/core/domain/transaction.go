package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money enters or leaves a wallet.
type TransactionType string

const (
	Income  TransactionType = "income"
	Outcome TransactionType = "outcome"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Outcome
}

// RecurrenceType is the cadence of a recurring transaction.
type RecurrenceType string

const (
	Daily     RecurrenceType = "daily"
	Weekly    RecurrenceType = "weekly"
	Biweekly  RecurrenceType = "biweekly"
	Monthly   RecurrenceType = "monthly"
	Bimonthly RecurrenceType = "bimonthly"
	Quarterly RecurrenceType = "quarterly"
	Yearly    RecurrenceType = "yearly"
)

// RecurrenceTypes lists every supported cadence, shortest first.
var RecurrenceTypes = []RecurrenceType{Daily, Weekly, Biweekly, Monthly, Bimonthly, Quarterly, Yearly}

// IsValid reports whether r is a supported cadence.
func (r RecurrenceType) IsValid() bool {
	for _, known := range RecurrenceTypes {
		if r == known {
			return true
		}
	}
	return false
}

// Transaction is a real money movement on a wallet. A recurring transaction
// also acts as the anchor from which future occurrences are projected; those
// occurrences are never stored.
type Transaction struct {
	TransactionID     int64           `json:"id"`
	WalletID          int64           `json:"walletId"`
	Type              TransactionType `json:"type"`
	Amount            decimal.Decimal `json:"amount"` // always > 0, the sign comes from Type
	Description       *string         `json:"description"`
	CategoryID        *int64          `json:"categoryId"`
	CategoryName      *string         `json:"categoryName"`  // read-only, joined from categories
	CategoryColor     *string         `json:"categoryColor"` // read-only, joined from categories
	Date              time.Time       `json:"date"`
	IsRecurring       bool            `json:"isRecurring"`
	RecurrenceType    *RecurrenceType `json:"recurrenceType"`
	RecurrenceEndDate *time.Time      `json:"recurrenceEndDate"`
	CreatedBy         string          `json:"createdBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// SignedAmount returns the amount as it affects a balance: positive for
// income, negative for outcome.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Outcome {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the invariants every stored transaction must satisfy.
func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return validationErrorf("type must be income or outcome, got %q", t.Type)
	}
	if !t.Amount.IsPositive() {
		return validationErrorf("amount must be greater than zero")
	}
	if t.Date.IsZero() {
		return validationErrorf("date is required")
	}
	if !t.IsRecurring {
		if t.RecurrenceType != nil || t.RecurrenceEndDate != nil {
			return validationErrorf("recurrence fields are only allowed on recurring transactions")
		}
		return nil
	}
	if t.RecurrenceType == nil || !t.RecurrenceType.IsValid() {
		return validationErrorf("recurring transactions need a valid recurrenceType")
	}
	if t.RecurrenceEndDate != nil && t.RecurrenceEndDate.Before(t.Date) {
		return validationErrorf("recurrenceEndDate cannot be before date")
	}
	return nil
}
