package recurrence

import (
	"fmt"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/teambition/rrule-go"
)

type ruleShape struct {
	freq     rrule.Frequency
	interval int
}

var ruleShapes = map[domain.RecurrenceType]ruleShape{
	domain.Daily:     {rrule.DAILY, 1},
	domain.Weekly:    {rrule.WEEKLY, 1},
	domain.Biweekly:  {rrule.WEEKLY, 2},
	domain.Monthly:   {rrule.MONTHLY, 1},
	domain.Bimonthly: {rrule.MONTHLY, 2},
	domain.Quarterly: {rrule.MONTHLY, 3},
	domain.Yearly:    {rrule.YEARLY, 1},
}

// BuildRule returns the RFC 5545 rule equivalent to a cadence.
// RFC 5545 skips months that lack the start day instead of clamping, so the
// rule describes the cadence for calendar clients and is not used for
// projections.
func BuildRule(freq domain.RecurrenceType, dtstart time.Time, until *time.Time) (*rrule.RRule, error) {
	shape, ok := ruleShapes[freq]
	if !ok {
		return nil, fmt.Errorf("unsupported recurrence type %q", freq)
	}

	opt := rrule.ROption{
		Freq:     shape.freq,
		Interval: shape.interval,
		Dtstart:  dtstart,
	}
	if until != nil {
		opt.Until = *until
	}
	return rrule.NewRRule(opt)
}

// RuleString renders the RRULE line (without DTSTART) for a recurring
// transaction. It returns "" for non recurring ones.
func RuleString(t domain.Transaction) string {
	if !t.IsRecurring || t.RecurrenceType == nil {
		return ""
	}
	rule, err := BuildRule(*t.RecurrenceType, t.Date, t.RecurrenceEndDate)
	if err != nil {
		return ""
	}
	return rule.OrigOptions.RRuleString()
}
