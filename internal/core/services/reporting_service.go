package services

import (
	"context"
	"log/slog"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	recurringRepo portsrepo.RecurringTransactionReader
	predictions   portssvc.PredictionService
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingWalletAuthorizer sets the wallet authorizer for the reporting service.
func WithReportingWalletAuthorizer(authorizer portssvc.WalletAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.WalletAuthorizer = authorizer
	}
}

// WithPredictions enables folding projected occurrences into the statistics.
func WithPredictions(recurringRepo portsrepo.RecurringTransactionReader, predictions portssvc.PredictionService) ReportingServiceOption {
	return func(s *reportingService) {
		s.recurringRepo = recurringRepo
		s.predictions = predictions
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// GetStats computes the dashboard figures for the wallets the user can read.
func (s *reportingService) GetStats(ctx context.Context, userID string, q domain.StatsQuery) (*domain.Stats, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	walletIDs, err := s.ReadableWallets(ctx, userID, q.WalletID)
	if err != nil {
		return nil, err
	}

	// Period totals honour the window only when it is closed on both sides.
	periodFrom, periodTo := q.StartDate, q.EndDate
	if periodFrom == nil || periodTo == nil {
		periodFrom, periodTo = nil, nil
	}
	period, err := s.reportingRepo.GetTotals(ctx, walletIDs, periodFrom, periodTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve period totals", slog.String("user_id", userID))
		return nil, err
	}

	cumulative, err := s.reportingRepo.GetTotals(ctx, walletIDs, nil, q.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cumulative totals", slog.String("user_id", userID))
		return nil, err
	}
	initial, err := s.reportingRepo.GetInitialBalanceTotal(ctx, walletIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve initial balances", slog.String("user_id", userID))
		return nil, err
	}
	balance := initial.Add(cumulative.Net())

	if q.IncludePredictions && q.EndDate != nil {
		period, balance = s.foldPredictions(ctx, userID, walletIDs, q, period, balance)
	}

	monthly, err := s.reportingRepo.GetMonthlyTotals(ctx, walletIDs, q.StartDate, q.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve monthly totals", slog.String("user_id", userID))
		return nil, err
	}
	if monthly == nil {
		monthly = []domain.MonthlyStat{}
	}

	s.LogInfo(ctx, "Statistics computed",
		slog.String("user_id", userID),
		slog.Int("wallet_count", len(walletIDs)),
		slog.Bool("include_predictions", q.IncludePredictions),
		slog.Int("month_count", len(monthly)))
	return &domain.Stats{
		TotalIncome:  period.Income,
		TotalOutcome: period.Outcome,
		Balance:      balance,
		MonthlyData:  monthly,
	}, nil
}

// foldPredictions adds every projected occurrence since the oldest recurring
// transaction to the balance, and the ones inside [start, end] to the period
// totals. On any failure both inputs are returned unchanged.
func (s *reportingService) foldPredictions(ctx context.Context, userID string, walletIDs []int64, q domain.StatsQuery, period domain.Totals, balance decimal.Decimal) (domain.Totals, decimal.Decimal) {
	if s.recurringRepo == nil || s.predictions == nil || len(walletIDs) == 0 {
		return period, balance
	}
	end := domain.DateOf(*q.EndDate)

	oldest, err := s.recurringRepo.FindOldestRecurringDate(ctx, walletIDs)
	if err != nil {
		s.LogWarn(ctx, err, "Skipping predictions in statistics", slog.String("user_id", userID))
		return period, balance
	}
	if oldest == nil || oldest.After(end) {
		return period, balance
	}

	all, err := s.predictions.GetPredictions(ctx, userID, domain.PredictionQuery{
		WalletID:  q.WalletID,
		StartDate: *oldest,
		EndDate:   end,
	})
	if err != nil {
		s.LogWarn(ctx, err, "Skipping predictions in statistics", slog.String("user_id", userID))
		return period, balance
	}

	var inPeriod []domain.PredictedOccurrence
	if q.StartDate != nil {
		start := domain.DateOf(*q.StartDate)
		if !start.After(end) {
			inPeriod, err = s.predictions.GetPredictions(ctx, userID, domain.PredictionQuery{
				WalletID:  q.WalletID,
				StartDate: start,
				EndDate:   end,
			})
			if err != nil {
				s.LogWarn(ctx, err, "Skipping predictions in statistics", slog.String("user_id", userID))
				return period, balance
			}
		}
	}

	for _, p := range all {
		balance = balance.Add(p.SignedAmount())
	}
	for _, p := range inPeriod {
		period = period.AddPredicted(p)
	}
	return period, balance
}
