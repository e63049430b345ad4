package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/utils/recurrence"
)

// predictionService implements the PredictionService interface
type predictionService struct {
	BaseService
	recurringRepo portsrepo.RecurringTransactionReader
}

// NewPredictionService creates a new prediction service
func NewPredictionService(recurringRepo portsrepo.RecurringTransactionReader, authorizer portssvc.WalletAuthorizerSvc) portssvc.PredictionService {
	return &predictionService{
		BaseService:   BaseService{WalletAuthorizer: authorizer},
		recurringRepo: recurringRepo,
	}
}

var _ portssvc.PredictionService = (*predictionService)(nil)

func (s *predictionService) GetPredictions(ctx context.Context, userID string, q domain.PredictionQuery) ([]domain.PredictedOccurrence, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	walletIDs, err := s.ReadableWallets(ctx, userID, q.WalletID)
	if err != nil {
		return nil, err
	}

	start, end := domain.DateOf(q.StartDate), domain.DateOf(q.EndDate)
	predictions, err := s.project(ctx, walletIDs, start, end)
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Predictions computed",
		slog.String("user_id", userID),
		slog.String("start", domain.FormatDate(start)),
		slog.String("end", domain.FormatDate(end)),
		slog.Int("count", len(predictions)))
	return predictions, nil
}

// project expands every recurring anchor still active up to end and keeps the
// occurrences dated within [start, end].
func (s *predictionService) project(ctx context.Context, walletIDs []int64, start, end time.Time) ([]domain.PredictedOccurrence, error) {
	predictions := []domain.PredictedOccurrence{}
	if len(walletIDs) == 0 {
		return predictions, nil
	}

	oldest, err := s.recurringRepo.FindOldestRecurringDate(ctx, walletIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find oldest recurring transaction")
		return nil, err
	}
	if oldest == nil {
		return predictions, nil
	}

	anchors, err := s.recurringRepo.ListRecurringAnchors(ctx, walletIDs, end, *oldest)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring transactions",
			slog.String("end", domain.FormatDate(end)))
		return nil, err
	}

	for _, anchor := range anchors {
		for _, p := range recurrence.Generate(anchor, end) {
			if p.Date.Before(start) || p.Date.After(end) {
				continue
			}
			predictions = append(predictions, p)
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		if !predictions[i].Date.Equal(predictions[j].Date) {
			return predictions[i].Date.Before(predictions[j].Date)
		}
		return predictions[i].SourceTransactionID < predictions[j].SourceTransactionID
	})
	return predictions, nil
}
