package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTotals sums real transactions, optionally bounded on either side.
func (r *reportingRepository) GetTotals(ctx context.Context, walletIDs []int64, from, to *time.Time) (domain.Totals, error) {
	var totals domain.Totals
	if len(walletIDs) == 0 {
		return totals, nil
	}
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = 'outcome' THEN amount END), 0) AS total_outcome
		FROM transactions
		WHERE wallet_id = ANY($1)
			AND ($2::date IS NULL OR date >= $2)
			AND ($3::date IS NULL OR date <= $3)
	`
	if err := r.Pool.QueryRow(ctx, query, walletIDs, from, to).Scan(&totals.Income, &totals.Outcome); err != nil {
		return domain.Totals{}, fmt.Errorf("error querying transaction totals: %w", err)
	}
	return totals, nil
}

// GetInitialBalanceTotal sums the opening balances of the wallets.
func (r *reportingRepository) GetInitialBalanceTotal(ctx context.Context, walletIDs []int64) (decimal.Decimal, error) {
	if len(walletIDs) == 0 {
		return decimal.Zero, nil
	}
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(initial_balance), 0) FROM wallets WHERE id = ANY($1)`,
		walletIDs,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error querying initial balances: %w", err)
	}
	return total, nil
}

// GetMonthlyTotals buckets real transactions by calendar month.
func (r *reportingRepository) GetMonthlyTotals(ctx context.Context, walletIDs []int64, from, to *time.Time) ([]domain.MonthlyStat, error) {
	if len(walletIDs) == 0 {
		return []domain.MonthlyStat{}, nil
	}
	query := `
		SELECT
			to_char(date, 'YYYY-MM') AS month,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'outcome' THEN amount END), 0) AS outcome
		FROM transactions
		WHERE wallet_id = ANY($1)
			AND ($2::date IS NULL OR date >= $2)
			AND ($3::date IS NULL OR date <= $3)
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.Pool.Query(ctx, query, walletIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyStat{}
	for rows.Next() {
		var row domain.MonthlyStat
		if err := rows.Scan(&row.Month, &row.Income, &row.Outcome); err != nil {
			return nil, fmt.Errorf("error scanning monthly totals row: %w", err)
		}
		row.Balance = row.Income.Sub(row.Outcome)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals rows: %w", err)
	}
	return result, nil
}
