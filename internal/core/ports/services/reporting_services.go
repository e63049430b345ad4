package services

import (
	"context"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
)

// ReportingService defines operations for the statistics dashboard
type ReportingService interface {
	// GetStats computes period totals, the cumulative balance and the monthly breakdown.
	GetStats(ctx context.Context, userID string, q domain.StatsQuery) (*domain.Stats, error)
}
