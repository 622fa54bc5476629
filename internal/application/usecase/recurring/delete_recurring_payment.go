package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// DeleteRecurringPaymentInput represents the input for deleting a recurring payment.
type DeleteRecurringPaymentInput struct {
	UserID    uuid.UUID
	PaymentID uuid.UUID
}

// DeleteRecurringPaymentUseCase handles recurring payment deletion. Ledger
// transactions previously generated from the payment are kept: the ledger
// records that money moved, which stays true after the schedule is gone.
type DeleteRecurringPaymentUseCase struct {
	paymentRepo adapter.RecurringPaymentRepository
}

// NewDeleteRecurringPaymentUseCase creates a new DeleteRecurringPaymentUseCase instance.
func NewDeleteRecurringPaymentUseCase(paymentRepo adapter.RecurringPaymentRepository) *DeleteRecurringPaymentUseCase {
	return &DeleteRecurringPaymentUseCase{paymentRepo: paymentRepo}
}

// Execute performs the recurring payment deletion.
func (uc *DeleteRecurringPaymentUseCase) Execute(ctx context.Context, input DeleteRecurringPaymentInput) error {
	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return err
	}
	if payment.UserID != input.UserID {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedPayment,
			"recurring payment belongs to another user",
			domainerror.ErrNotAuthorizedToModifyPayment,
		)
	}

	if err := uc.paymentRepo.Delete(ctx, input.PaymentID); err != nil {
		return fmt.Errorf("failed to delete recurring payment: %w", err)
	}

	return nil
}
