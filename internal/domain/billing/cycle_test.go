package billing

import (
	"testing"
	"time"

	"github.com/budgetwise/backend/internal/domain/entity"
)

func TestMonthID(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"january", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 2024 * 12},
		{"december", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), 2024*12 + 11},
		{"march", time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), 2024*12 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthID(tt.date); got != tt.want {
				t.Errorf("MonthID(%v) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestMonthID_OrdersAcrossYearBoundary(t *testing.T) {
	december := time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)
	january := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	if MonthID(january)-MonthID(december) != 1 {
		t.Errorf("expected January 2024 to be exactly one month after December 2023")
	}
}

func TestNextDueDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		dueDay    int
		frequency entity.Frequency
		want      time.Time
	}{
		{
			name:      "monthly due day ahead stays in current month",
			dueDay:    20,
			frequency: entity.FrequencyMonthly,
			want:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly due day passed rolls to next month",
			dueDay:    5,
			frequency: entity.FrequencyMonthly,
			want:      time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "yearly advances one year",
			dueDay:    20,
			frequency: entity.FrequencyYearly,
			want:      time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "weekly advances one week",
			dueDay:    20,
			frequency: entity.FrequencyWeekly,
			want:      time.Date(2024, 3, 27, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.dueDay, tt.frequency, now)
			if !got.Equal(tt.want) {
				t.Errorf("NextDueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	if got := DaysUntilDue(20, now); got != 10 {
		t.Errorf("DaysUntilDue(20) = %d, want 10", got)
	}

	// Due day already passed: counts forward into next month.
	if got := DaysUntilDue(5, now); got != 26 {
		t.Errorf("DaysUntilDue(5) = %d, want 26", got)
	}
}
