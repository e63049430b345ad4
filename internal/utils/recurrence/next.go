package recurrence

import (
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
)

// NextOccurrence returns the date one period after date for the given
// cadence. Unknown cadences advance by one month.
//
// Month based steps keep the day of month when it exists in the target month
// and otherwise land on that month's last day, so Jan 31 + 1 month is Feb 28
// (or 29). Callers iterate from the previous result, which means a clamped
// day is carried forward.
func NextOccurrence(date time.Time, freq domain.RecurrenceType) time.Time {
	switch freq {
	case domain.Daily:
		return date.AddDate(0, 0, 1)
	case domain.Weekly:
		return date.AddDate(0, 0, 7)
	case domain.Biweekly:
		return date.AddDate(0, 0, 14)
	case domain.Monthly:
		return addMonths(date, 1)
	case domain.Bimonthly:
		return addMonths(date, 2)
	case domain.Quarterly:
		return addMonths(date, 3)
	case domain.Yearly:
		return addMonths(date, 12)
	default:
		return addMonths(date, 1)
	}
}

// addMonths is time.AddDate for months without the overflow into the
// following month.
func addMonths(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, date.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), date.Location()); d > last {
		d = last
	}
	hh, mm, ss := date.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, date.Nanosecond(), date.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
