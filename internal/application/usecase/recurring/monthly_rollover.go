package recurring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/billing"
)

// MonthlyRolloverInput represents the input for the monthly rollover.
type MonthlyRolloverInput struct {
	UserID uuid.UUID
}

// MonthlyRolloverUseCase forcibly resets all of a user's recurring payments
// to pending for the current month, clearing early-payment markers. This is
// a maintenance operation; the lazy refresh in ListRecurringPaymentsUseCase
// reaches the same statuses on its own over time.
type MonthlyRolloverUseCase struct {
	paymentRepo adapter.RecurringPaymentRepository
	clock       adapter.Clock
}

// NewMonthlyRolloverUseCase creates a new MonthlyRolloverUseCase instance.
func NewMonthlyRolloverUseCase(
	paymentRepo adapter.RecurringPaymentRepository,
	clock adapter.Clock,
) *MonthlyRolloverUseCase {
	return &MonthlyRolloverUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute resets the user's payments for the current month as one atomic batch.
func (uc *MonthlyRolloverUseCase) Execute(ctx context.Context, input MonthlyRolloverInput) error {
	monthID := billing.MonthID(uc.clock.Now())

	if err := uc.paymentRepo.ResetForMonth(ctx, input.UserID, monthID); err != nil {
		return fmt.Errorf("failed to roll recurring payments over: %w", err)
	}

	slog.Info("Recurring payments rolled over", "userID", input.UserID, "monthID", monthID)
	return nil
}
