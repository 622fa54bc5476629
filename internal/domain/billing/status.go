package billing

import (
	"time"

	"github.com/budgetwise/backend/internal/domain/entity"
)

const week = 7 * 24 * time.Hour

// ComputeStatus derives a recurring payment's current status as of now.
// It never mutates the payment; the caller decides whether to persist the
// recomputed value.
//
// Never-paid payments start pending, except monthly payments already past
// their due day, which start overdue. Weekly and yearly payments never start
// overdue on first evaluation; that asymmetry is intentional and kept under
// review.
func ComputeStatus(p *entity.RecurringPayment, now time.Time) entity.PaymentStatus {
	if p.LastPaidMonth == nil {
		if p.Frequency == entity.FrequencyMonthly && now.Day() > p.DueDay {
			return entity.PaymentStatusOverdue
		}
		return entity.PaymentStatusPending
	}

	switch p.Frequency {
	case entity.FrequencyMonthly:
		if MonthID(now) > *p.LastPaidMonth {
			return newCycleStatus(p.DueDay, now)
		}
		return p.Status

	case entity.FrequencyYearly:
		if (MonthID(now)-*p.LastPaidMonth)/12 >= 1 {
			return newCycleStatus(p.DueDay, now)
		}
		return p.Status

	case entity.FrequencyWeekly:
		// Weekly payments re-enter pending once a whole week has elapsed
		// since the last payment; they never escalate to overdue.
		if p.LastPaid != nil && now.Sub(*p.LastPaid) >= week {
			return entity.PaymentStatusPending
		}
		return p.Status

	default:
		return p.Status
	}
}

// newCycleStatus resolves the status for a payment whose billing cycle has
// rolled over: overdue once past the due day, pending until then.
func newCycleStatus(dueDay int, now time.Time) entity.PaymentStatus {
	if now.Day() > dueDay {
		return entity.PaymentStatusOverdue
	}
	return entity.PaymentStatusPending
}
