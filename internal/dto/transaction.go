package dto

import (
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/ThibautWa/grigou-sub000/internal/utils/recurrence"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	WalletID          int64                  `json:"walletId" binding:"required,gt=0"`
	Type              domain.TransactionType `json:"type" binding:"required,oneof=income outcome"`
	Amount            decimal.Decimal        `json:"amount"`
	Description       *string                `json:"description" binding:"omitempty,max=255"`
	CategoryID        *int64                 `json:"categoryId" binding:"omitempty,gt=0"`
	Date              string                 `json:"date" binding:"required,isodate"`
	IsRecurring       bool                   `json:"isRecurring"`
	RecurrenceType    *domain.RecurrenceType `json:"recurrenceType" binding:"omitempty,recurrence"`
	RecurrenceEndDate *string                `json:"recurrenceEndDate" binding:"omitempty,isodate"`
}

// UpdateTransactionRequest is a partial update: only non-nil fields change.
// An empty recurrenceEndDate removes the end date; isRecurring=false clears
// the recurrence fields.
type UpdateTransactionRequest struct {
	Type              *domain.TransactionType `json:"type" binding:"omitempty,oneof=income outcome"`
	Amount            *decimal.Decimal        `json:"amount"`
	Description       *string                 `json:"description" binding:"omitempty,max=255"`
	CategoryID        *int64                  `json:"categoryId" binding:"omitempty,gte=0"` // 0 removes the category
	Date              *string                 `json:"date" binding:"omitempty,isodate"`
	IsRecurring       *bool                   `json:"isRecurring"`
	RecurrenceType    *domain.RecurrenceType  `json:"recurrenceType" binding:"omitempty,recurrence"`
	RecurrenceEndDate *string                 `json:"recurrenceEndDate" binding:"omitempty,isodate"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     int64                  `json:"id"`
	WalletID          int64                  `json:"walletId"`
	Type              domain.TransactionType `json:"type"`
	Amount            decimal.Decimal        `json:"amount"`
	Description       *string                `json:"description"`
	CategoryID        *int64                 `json:"categoryId"`
	CategoryName      *string                `json:"categoryName"`
	CategoryColor     *string                `json:"categoryColor"`
	Date              string                 `json:"date"`
	IsRecurring       bool                   `json:"isRecurring"`
	RecurrenceType    *domain.RecurrenceType `json:"recurrenceType"`
	RecurrenceEndDate *string                `json:"recurrenceEndDate"`
	RecurrenceRule    string                 `json:"recurrenceRule,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	WalletID  *int64  `form:"walletId" binding:"omitempty,gt=0"`
	StartDate *string `form:"startDate" binding:"omitempty,isodate"`
	EndDate   *string `form:"endDate" binding:"omitempty,isodate"`
	Limit     int     `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:  t.TransactionID,
		WalletID:       t.WalletID,
		Type:           t.Type,
		Amount:         t.Amount.Round(2),
		Description:    t.Description,
		CategoryID:     t.CategoryID,
		CategoryName:   t.CategoryName,
		CategoryColor:  t.CategoryColor,
		Date:           domain.FormatDate(t.Date),
		IsRecurring:    t.IsRecurring,
		RecurrenceType: t.RecurrenceType,
		RecurrenceRule: recurrence.RuleString(*t),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.RecurrenceEndDate != nil {
		end := domain.FormatDate(*t.RecurrenceEndDate)
		resp.RecurrenceEndDate = &end
	}
	return resp
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs.
func ToListTransactionResponse(transactions []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		res[i] = ToTransactionResponse(&transactions[i])
	}
	return res
}
