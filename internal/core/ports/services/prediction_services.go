package services

import (
	"context"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
)

// PredictionService projects recurring transactions into the future
type PredictionService interface {
	// GetPredictions returns every projected occurrence dated within
	// [q.StartDate, q.EndDate], sorted ascending by date.
	GetPredictions(ctx context.Context, userID string, q domain.PredictionQuery) ([]domain.PredictedOccurrence, error)
}
