// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents how often a recurring payment comes due.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid reports whether the frequency is one of the known values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyYearly:
		return true
	}
	return false
}

// PaymentStatus represents the lifecycle state of a recurring payment within
// its current billing cycle. The persisted value is the last-known status and
// can be stale across a cycle boundary; it must be recomputed before any
// cycle-crossing decision.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// RecurringPayment represents a recurring obligation (bill or expected
// income) in the Budgetwise system.
type RecurringPayment struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal // Always positive
	Category    DetailedCategory
	Subcategory string
	Frequency   Frequency
	DueDay      int // Day of month in [1,31]; retained but unused for weekly
	Type        TransactionType
	Status      PaymentStatus

	// LastPaid is the date of the most recent payment, nil if never paid.
	LastPaid *time.Time
	// LastPaidMonth is year*12 + zero-indexed month of LastPaid, kept for
	// cycle-boundary comparisons. Nil if never paid.
	LastPaidMonth *int
	// PaidEarly is true when the most recent payment settled a future
	// billing cycle.
	PaidEarly        bool
	EarlyPaymentDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecurringPayment creates a new RecurringPayment entity. New payments
// start pending and have never been paid.
func NewRecurringPayment(
	userID uuid.UUID,
	description string,
	amount decimal.Decimal,
	category DetailedCategory,
	subcategory string,
	frequency Frequency,
	dueDay int,
	paymentType TransactionType,
) *RecurringPayment {
	now := time.Now().UTC()

	return &RecurringPayment{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Subcategory: subcategory,
		Frequency:   frequency,
		DueDay:      dueDay,
		Type:        paymentType,
		Status:      PaymentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MonthlyEquivalentAmount returns the payment's contribution to a monthly
// expense projection: yearly amounts are spread over twelve months and weekly
// amounts counted four times.
func (p *RecurringPayment) MonthlyEquivalentAmount() decimal.Decimal {
	switch p.Frequency {
	case FrequencyYearly:
		return p.Amount.Div(decimal.NewFromInt(12))
	case FrequencyWeekly:
		return p.Amount.Mul(decimal.NewFromInt(4))
	default:
		return p.Amount
	}
}

// IsOutstanding reports whether the payment still needs to be settled in the
// current cycle (pending or overdue).
func (p *RecurringPayment) IsOutstanding() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusOverdue
}
