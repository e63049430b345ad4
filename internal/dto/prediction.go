package dto

import (
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PredictionsQuery defines query parameters of the predictions endpoints.
// Both dates are required; they are checked by the handler so the error
// message can name them together.
type PredictionsQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	WalletID  *int64 `form:"walletId" binding:"omitempty,gt=0"`
}

// PredictionResponse is a projected occurrence as returned to clients.
type PredictionResponse struct {
	ID                  string                 `json:"id"`
	SourceTransactionID int64                  `json:"sourceTransactionId"`
	WalletID            int64                  `json:"walletId"`
	Type                domain.TransactionType `json:"type"`
	Amount              decimal.Decimal        `json:"amount"`
	Description         *string                `json:"description"`
	CategoryID          *int64                 `json:"categoryId"`
	CategoryName        *string                `json:"categoryName"`
	CategoryColor       *string                `json:"categoryColor"`
	RecurrenceType      domain.RecurrenceType  `json:"recurrenceType"`
	Date                string                 `json:"date"`
	IsPredicted         bool                   `json:"isPredicted"`
}

// ToPredictionResponses converts projected occurrences to response DTOs.
func ToPredictionResponses(predictions []domain.PredictedOccurrence) []PredictionResponse {
	res := make([]PredictionResponse, len(predictions))
	for i, p := range predictions {
		res[i] = PredictionResponse{
			ID:                  p.ID,
			SourceTransactionID: p.SourceTransactionID,
			WalletID:            p.WalletID,
			Type:                p.Type,
			Amount:              p.Amount.Round(2),
			Description:         p.Description,
			CategoryID:          p.CategoryID,
			CategoryName:        p.CategoryName,
			CategoryColor:       p.CategoryColor,
			RecurrenceType:      p.RecurrenceType,
			Date:                domain.FormatDate(p.Date),
			IsPredicted:         p.IsPredicted,
		}
	}
	return res
}
