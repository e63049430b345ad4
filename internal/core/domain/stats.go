package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals accumulates income and outcome amounts.
type Totals struct {
	Income  decimal.Decimal
	Outcome decimal.Decimal
}

// Net is income minus outcome.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Outcome)
}

// AddPredicted folds a projected occurrence into the totals.
func (t Totals) AddPredicted(p PredictedOccurrence) Totals {
	if p.Type == Income {
		t.Income = t.Income.Add(p.Amount)
	} else {
		t.Outcome = t.Outcome.Add(p.Amount)
	}
	return t
}

// StatsQuery selects what GetStats aggregates. Nil dates mean unbounded.
type StatsQuery struct {
	WalletID           *int64
	StartDate          *time.Time
	EndDate            *time.Time
	IncludePredictions bool
}

// Validate rejects inverted windows.
func (q StatsQuery) Validate() error {
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return validationErrorf("startDate must not be after endDate")
	}
	return nil
}

// MonthlyStat is the breakdown of one YYYY-MM bucket. The cumulative and
// predicted fields are part of the response shape but are not populated.
type MonthlyStat struct {
	Month             string          `json:"month"`
	Income            decimal.Decimal `json:"income"`
	Outcome           decimal.Decimal `json:"outcome"`
	Balance           decimal.Decimal `json:"balance"`
	CumulativeBalance decimal.Decimal `json:"cumulativeBalance"`
	PredictedIncome   decimal.Decimal `json:"predictedIncome"`
	PredictedOutcome  decimal.Decimal `json:"predictedOutcome"`
}

// Stats is the aggregate returned to the dashboard.
type Stats struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalOutcome decimal.Decimal `json:"totalOutcome"`
	Balance      decimal.Decimal `json:"balance"`
	MonthlyData  []MonthlyStat   `json:"monthlyData"`
}
