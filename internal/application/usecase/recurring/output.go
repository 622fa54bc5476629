// Package recurring contains recurring payment use cases: creation, the lazy
// status refresh, the mark-as-paid transition, and the monthly rollover.
package recurring

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/billing"
	"github.com/budgetwise/backend/internal/domain/entity"
)

// RecurringPaymentOutput represents a single recurring payment in use case outputs.
type RecurringPaymentOutput struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Description      string
	Amount           decimal.Decimal
	Category         entity.DetailedCategory
	Subcategory      string
	Frequency        entity.Frequency
	DueDay           int
	Type             entity.TransactionType
	Status           entity.PaymentStatus
	LastPaid         *time.Time
	PaidEarly        bool
	EarlyPaymentDate *time.Time
	NextDueDate      time.Time
	DaysUntilDue     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// toOutput converts a payment entity to its output representation as of now.
func toOutput(p *entity.RecurringPayment, now time.Time) *RecurringPaymentOutput {
	return &RecurringPaymentOutput{
		ID:               p.ID,
		UserID:           p.UserID,
		Description:      p.Description,
		Amount:           p.Amount,
		Category:         p.Category,
		Subcategory:      p.Subcategory,
		Frequency:        p.Frequency,
		DueDay:           p.DueDay,
		Type:             p.Type,
		Status:           p.Status,
		LastPaid:         p.LastPaid,
		PaidEarly:        p.PaidEarly,
		EarlyPaymentDate: p.EarlyPaymentDate,
		NextDueDate:      billing.NextDueDate(p.DueDay, p.Frequency, now),
		DaysUntilDue:     billing.DaysUntilDue(p.DueDay, now),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// EarlyPaymentPolicy holds the thresholds of the early-payment heuristic:
// a payment marked paid on or after MinPayDay for a bill due on or before
// MaxDueDay is treated as settling the next cycle with this month's salary.
type EarlyPaymentPolicy struct {
	MinPayDay int
	MaxDueDay int
}

// DefaultEarlyPaymentPolicy returns the thresholds tuned for an end-of-month
// payroll cadence.
func DefaultEarlyPaymentPolicy() EarlyPaymentPolicy {
	return EarlyPaymentPolicy{MinPayDay: 22, MaxDueDay: 15}
}

// IsEarly reports whether settling on the given day of month counts as an
// early payment for a bill due on dueDay.
func (p EarlyPaymentPolicy) IsEarly(currentDay, dueDay int) bool {
	return currentDay >= p.MinPayDay && dueDay <= p.MaxDueDay
}
