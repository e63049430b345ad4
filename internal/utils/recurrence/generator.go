package recurrence

import (
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
)

// Generate projects the occurrences of a recurring anchor that fall strictly
// after the anchor date and on or before min(recurrenceEndDate, horizonEnd).
// The anchor itself is a real transaction and is never emitted.
// Non recurring anchors produce no occurrences.
func Generate(anchor domain.Transaction, horizonEnd time.Time) []domain.PredictedOccurrence {
	occurrences := make([]domain.PredictedOccurrence, 0)
	if !anchor.IsRecurring || anchor.RecurrenceType == nil {
		return occurrences
	}

	freq := *anchor.RecurrenceType
	for _, date := range Dates(anchor.Date, freq, limitFor(anchor, horizonEnd)) {
		occurrences = append(occurrences, domain.PredictedOccurrence{
			ID:                  domain.OccurrenceID(anchor.TransactionID, date),
			SourceTransactionID: anchor.TransactionID,
			WalletID:            anchor.WalletID,
			Type:                anchor.Type,
			Amount:              anchor.Amount,
			Description:         anchor.Description,
			CategoryID:          anchor.CategoryID,
			CategoryName:        anchor.CategoryName,
			CategoryColor:       anchor.CategoryColor,
			RecurrenceType:      freq,
			Date:                date,
			IsPredicted:         true,
		})
	}
	return occurrences
}

// Dates returns every step after start up to and including limit.
func Dates(start time.Time, freq domain.RecurrenceType, limit time.Time) []time.Time {
	var dates []time.Time
	for current := NextOccurrence(start, freq); !current.After(limit); current = NextOccurrence(current, freq) {
		dates = append(dates, current)
	}
	return dates
}

func limitFor(anchor domain.Transaction, horizonEnd time.Time) time.Time {
	if anchor.RecurrenceEndDate != nil && anchor.RecurrenceEndDate.Before(horizonEnd) {
		return *anchor.RecurrenceEndDate
	}
	return horizonEnd
}
