package dto

import (
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a wallet.
type CreateWalletRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Description    *string         `json:"description" binding:"omitempty,max=255"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrencyCode   string          `json:"currencyCode" binding:"omitempty,len=3,alpha"`
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID       int64                   `json:"id"`
	OwnerID        string                  `json:"ownerId"`
	Name           string                  `json:"name"`
	Description    *string                 `json:"description"`
	InitialBalance decimal.Decimal         `json:"initialBalance"`
	CurrencyCode   string                  `json:"currencyCode"`
	Permission     domain.WalletPermission `json:"permission,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// AdjustBalanceRequest is the body of POST /api/wallets/{id}/adjust.
type AdjustBalanceRequest struct {
	NewBalance     *decimal.Decimal `json:"newBalance" binding:"required"`
	CurrentBalance *decimal.Decimal `json:"currentBalance"`
	Date           *string          `json:"date" binding:"omitempty,isodate"`
}

// AdjustBalanceResponse reports what an adjustment did.
type AdjustBalanceResponse struct {
	PreviousBalance    decimal.Decimal      `json:"previousBalance"`
	NewBalance         decimal.Decimal      `json:"newBalance"`
	Difference         decimal.Decimal      `json:"difference"`
	TransactionCreated bool                 `json:"transactionCreated"`
	Transaction        *TransactionResponse `json:"transaction,omitempty"`
	Message            string               `json:"message"`
}

// WalletBalanceResponse is the read-only balance probe.
type WalletBalanceResponse struct {
	WalletID          int64           `json:"walletId"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	TransactionsTotal decimal.Decimal `json:"transactionsTotal"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:       w.WalletID,
		OwnerID:        w.OwnerID,
		Name:           w.Name,
		Description:    w.Description,
		InitialBalance: w.InitialBalance.Round(2),
		CurrencyCode:   w.CurrencyCode,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

// ToWalletAccessResponse adds the caller's permission to the wallet DTO.
func ToWalletAccessResponse(w *domain.WalletAccess) WalletResponse {
	resp := ToWalletResponse(&w.Wallet)
	resp.Permission = w.Permission
	return resp
}

// ToListWalletResponse converts a slice of domain.WalletAccess to WalletResponse DTOs
func ToListWalletResponse(wallets []domain.WalletAccess) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i := range wallets {
		res[i] = ToWalletAccessResponse(&wallets[i])
	}
	return res
}

// ToAdjustBalanceResponse converts the adjustment outcome to its response DTO.
func ToAdjustBalanceResponse(a *domain.BalanceAdjustment) AdjustBalanceResponse {
	resp := AdjustBalanceResponse{
		PreviousBalance:    a.PreviousBalance.Round(2),
		NewBalance:         a.NewBalance.Round(2),
		Difference:         a.Difference.Round(2),
		TransactionCreated: a.TransactionCreated,
		Message:            "Balance already correct, no adjustment needed",
	}
	if a.Transaction != nil {
		txn := ToTransactionResponse(a.Transaction)
		resp.Transaction = &txn
		resp.Message = domain.AdjustmentDescription(a.Difference)
	}
	return resp
}

// ToWalletBalanceResponse converts the balance probe to its response DTO.
func ToWalletBalanceResponse(b *domain.WalletBalance) WalletBalanceResponse {
	return WalletBalanceResponse{
		WalletID:          b.WalletID,
		CurrentBalance:    b.CurrentBalance.Round(2),
		InitialBalance:    b.InitialBalance.Round(2),
		TransactionsTotal: b.TransactionsTotal.Round(2),
	}
}
