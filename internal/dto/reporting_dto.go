package dto

import (
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatsQuery defines query parameters of the statistics endpoint.
type StatsQuery struct {
	StartDate          *string `form:"startDate" binding:"omitempty,isodate"`
	EndDate            *string `form:"endDate" binding:"omitempty,isodate"`
	IncludePredictions bool    `form:"includePredictions"`
	WalletID           *int64  `form:"walletId" binding:"omitempty,gt=0"`
}

// MonthlyStatResponse represents one month of the breakdown
type MonthlyStatResponse struct {
	Month             string          `json:"month"`
	Income            decimal.Decimal `json:"income"`
	Outcome           decimal.Decimal `json:"outcome"`
	Balance           decimal.Decimal `json:"balance"`
	CumulativeBalance decimal.Decimal `json:"cumulativeBalance"`
	PredictedIncome   decimal.Decimal `json:"predictedIncome"`
	PredictedOutcome  decimal.Decimal `json:"predictedOutcome"`
}

// StatsResponse represents the statistics report response
type StatsResponse struct {
	TotalIncome  decimal.Decimal       `json:"totalIncome"`
	TotalOutcome decimal.Decimal       `json:"totalOutcome"`
	Balance      decimal.Decimal       `json:"balance"`
	MonthlyData  []MonthlyStatResponse `json:"monthlyData"`
}

// ToStatsResponse rounds every figure to cents for presentation.
func ToStatsResponse(stats *domain.Stats) StatsResponse {
	resp := StatsResponse{
		TotalIncome:  stats.TotalIncome.Round(2),
		TotalOutcome: stats.TotalOutcome.Round(2),
		Balance:      stats.Balance.Round(2),
		MonthlyData:  make([]MonthlyStatResponse, len(stats.MonthlyData)),
	}
	for i, m := range stats.MonthlyData {
		resp.MonthlyData[i] = MonthlyStatResponse{
			Month:             m.Month,
			Income:            m.Income.Round(2),
			Outcome:           m.Outcome.Round(2),
			Balance:           m.Balance.Round(2),
			CumulativeBalance: m.CumulativeBalance.Round(2),
			PredictedIncome:   m.PredictedIncome.Round(2),
			PredictedOutcome:  m.PredictedOutcome.Round(2),
		}
	}
	return resp
}
