// Package billing implements the recurring payment billing-cycle logic:
// month arithmetic, due-date rollovers, and the status engine that derives a
// payment's lifecycle state from its frequency, due day, and payment history.
// All functions are pure and take an explicit "now" so callers control time.
package billing

import (
	"time"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// MonthID returns an ordinal month identifier (year*12 + zero-indexed month)
// used for cycle-boundary comparisons. The value is never displayed.
func MonthID(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// NextDueDate computes the next occurrence of dueDay strictly after now's
// cycle start. If the naive due date for the current month has already
// passed, it rolls forward one month first; yearly advances one year and
// weekly one week on top of that.
func NextDueDate(dueDay int, frequency entity.Frequency, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), dueDay, 0, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 1, 0)
	}

	switch frequency {
	case entity.FrequencyYearly:
		next = next.AddDate(1, 0, 0)
	case entity.FrequencyWeekly:
		next = next.AddDate(0, 0, 7)
	}

	return next
}

// DaysUntilDue returns the whole-day count until the next monthly occurrence
// of dueDay, rounded up. Always forward-looking per NextDueDate.
func DaysUntilDue(dueDay int, now time.Time) int {
	next := NextDueDate(dueDay, entity.FrequencyMonthly, now)
	diff := next.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
