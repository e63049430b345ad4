package repositories

import (
	"context"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the aggregate queries behind the statistics endpoint
type ReportingRepository interface {
	// GetTotals sums income and outcome of real transactions in the wallets,
	// restricted to [from, to] when those bounds are set.
	GetTotals(ctx context.Context, walletIDs []int64, from, to *time.Time) (domain.Totals, error)

	// GetInitialBalanceTotal sums the initial balances of the wallets.
	GetInitialBalanceTotal(ctx context.Context, walletIDs []int64) (decimal.Decimal, error)

	// GetMonthlyTotals groups real transactions by YYYY-MM, oldest month first.
	GetMonthlyTotals(ctx context.Context, walletIDs []int64, from, to *time.Time) ([]domain.MonthlyStat, error)
}
