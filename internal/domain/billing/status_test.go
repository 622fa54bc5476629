package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

func paymentFixture(frequency entity.Frequency, dueDay int, status entity.PaymentStatus) *entity.RecurringPayment {
	p := entity.NewRecurringPayment(
		uuid.New(), "Internet", decimal.NewFromInt(50),
		entity.CategoryUtilities, "", frequency, dueDay, entity.TransactionTypeExpense,
	)
	p.Status = status
	return p
}

func paidOn(p *entity.RecurringPayment, date time.Time) *entity.RecurringPayment {
	month := MonthID(date)
	p.Status = entity.PaymentStatusPaid
	p.LastPaid = &date
	p.LastPaidMonth = &month
	return p
}

func TestComputeStatus_NeverPaid(t *testing.T) {
	tests := []struct {
		name      string
		frequency entity.Frequency
		dueDay    int
		now       time.Time
		want      entity.PaymentStatus
	}{
		{
			name:      "monthly before due day is pending",
			frequency: entity.FrequencyMonthly,
			dueDay:    15,
			now:       time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			want:      entity.PaymentStatusPending,
		},
		{
			name:      "monthly on due day is pending",
			frequency: entity.FrequencyMonthly,
			dueDay:    15,
			now:       time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			want:      entity.PaymentStatusPending,
		},
		{
			name:      "monthly past due day is overdue",
			frequency: entity.FrequencyMonthly,
			dueDay:    15,
			now:       time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
			want:      entity.PaymentStatusOverdue,
		},
		{
			name:      "weekly past due day stays pending",
			frequency: entity.FrequencyWeekly,
			dueDay:    15,
			now:       time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
			want:      entity.PaymentStatusPending,
		},
		{
			name:      "yearly past due day stays pending",
			frequency: entity.FrequencyYearly,
			dueDay:    15,
			now:       time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
			want:      entity.PaymentStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paymentFixture(tt.frequency, tt.dueDay, entity.PaymentStatusPending)
			if got := ComputeStatus(p, tt.now); got != tt.want {
				t.Errorf("ComputeStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeStatus_MonthlySameCycleIsUnchanged(t *testing.T) {
	paidDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := paidOn(paymentFixture(entity.FrequencyMonthly, 1, entity.PaymentStatusPending), paidDate)

	// Regardless of the day vs due day, the same cycle keeps the stored status.
	for _, day := range []int{1, 2, 15, 31} {
		now := time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC)
		if got := ComputeStatus(p, now); got != entity.PaymentStatusPaid {
			t.Errorf("day %d: ComputeStatus() = %v, want paid", day, got)
		}
	}
}

func TestComputeStatus_MonthlyNewCycle(t *testing.T) {
	paidDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := paidOn(paymentFixture(entity.FrequencyMonthly, 1, entity.PaymentStatusPending), paidDate)

	pendingNow := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	if got := ComputeStatus(p, pendingNow); got != entity.PaymentStatusPending {
		t.Errorf("new cycle on due day: got %v, want pending", got)
	}

	overdueNow := time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
	if got := ComputeStatus(p, overdueNow); got != entity.PaymentStatusOverdue {
		t.Errorf("new cycle past due day: got %v, want overdue", got)
	}
}

func TestComputeStatus_Yearly(t *testing.T) {
	paidDate := time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC)
	p := paidOn(paymentFixture(entity.FrequencyYearly, 10, entity.PaymentStatusPending), paidDate)

	// Eleven months later: still inside the yearly cycle.
	sameCycle := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	if got := ComputeStatus(p, sameCycle); got != entity.PaymentStatusPaid {
		t.Errorf("within yearly cycle: got %v, want paid", got)
	}

	// A full year later, past the due day: overdue.
	nextCycle := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := ComputeStatus(p, nextCycle); got != entity.PaymentStatusOverdue {
		t.Errorf("new yearly cycle past due day: got %v, want overdue", got)
	}

	// A full year later, before the due day: pending.
	nextCycleEarly := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	if got := ComputeStatus(p, nextCycleEarly); got != entity.PaymentStatusPending {
		t.Errorf("new yearly cycle before due day: got %v, want pending", got)
	}
}

func TestComputeStatus_WeeklyNeverOverdue(t *testing.T) {
	paidDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := paidOn(paymentFixture(entity.FrequencyWeekly, 5, entity.PaymentStatusPending), paidDate)

	// Within the same week the stored status is kept.
	sameWeek := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	if got := ComputeStatus(p, sameWeek); got != entity.PaymentStatusPaid {
		t.Errorf("same week: got %v, want paid", got)
	}

	// Any amount of elapsed weeks yields pending, never overdue.
	for _, daysLater := range []int{7, 8, 30, 365} {
		now := paidDate.AddDate(0, 0, daysLater)
		if got := ComputeStatus(p, now); got != entity.PaymentStatusPending {
			t.Errorf("%d days later: got %v, want pending", daysLater, got)
		}
	}
}

func TestComputeStatus_UnknownFrequencyKeepsStatus(t *testing.T) {
	paidDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := paidOn(paymentFixture(entity.Frequency("fortnightly"), 5, entity.PaymentStatusPending), paidDate)

	now := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	if got := ComputeStatus(p, now); got != entity.PaymentStatusPaid {
		t.Errorf("unknown frequency: got %v, want stored status", got)
	}
}

func TestComputeStatus_IsPure(t *testing.T) {
	paidDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := paidOn(paymentFixture(entity.FrequencyMonthly, 1, entity.PaymentStatusPending), paidDate)

	ComputeStatus(p, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))

	if p.Status != entity.PaymentStatusPaid {
		t.Errorf("ComputeStatus mutated the payment: status = %v", p.Status)
	}
}
