package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PredictedOccurrence is a projected future instance of a recurring
// transaction. It exists only for the duration of a request.
type PredictedOccurrence struct {
	ID                  string          `json:"id"`
	SourceTransactionID int64           `json:"sourceTransactionId"`
	WalletID            int64           `json:"walletId"`
	Type                TransactionType `json:"type"`
	Amount              decimal.Decimal `json:"amount"`
	Description         *string         `json:"description"`
	CategoryID          *int64          `json:"categoryId"`
	CategoryName        *string         `json:"categoryName"`
	CategoryColor       *string         `json:"categoryColor"`
	RecurrenceType      RecurrenceType  `json:"recurrenceType"`
	Date                time.Time       `json:"date"`
	IsPredicted         bool            `json:"isPredicted"`
}

// OccurrenceID builds the synthetic identifier "<sourceId>-<YYYY-MM-DD>".
func OccurrenceID(sourceID int64, date time.Time) string {
	return fmt.Sprintf("%d-%s", sourceID, FormatDate(date))
}

// SignedAmount mirrors Transaction.SignedAmount for projected values.
func (p PredictedOccurrence) SignedAmount() decimal.Decimal {
	if p.Type == Outcome {
		return p.Amount.Neg()
	}
	return p.Amount
}

// PredictionQuery selects the projection window. Both bounds are inclusive.
type PredictionQuery struct {
	WalletID  *int64
	StartDate time.Time
	EndDate   time.Time
}

// Validate rejects inverted windows.
func (q PredictionQuery) Validate() error {
	if q.StartDate.IsZero() || q.EndDate.IsZero() {
		return validationErrorf("startDate and endDate are required")
	}
	if q.StartDate.After(q.EndDate) {
		return validationErrorf("startDate must not be after endDate")
	}
	return nil
}
