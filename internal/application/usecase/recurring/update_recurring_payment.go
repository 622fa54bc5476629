package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// UpdateRecurringPaymentInput represents the input for updating a recurring
// payment. Nil fields are left unchanged.
type UpdateRecurringPaymentInput struct {
	UserID      uuid.UUID
	PaymentID   uuid.UUID
	Description *string
	Amount      *decimal.Decimal
	Category    *entity.DetailedCategory
	Subcategory *string
	Frequency   *entity.Frequency
	DueDay      *int
	Type        *entity.TransactionType
}

// UpdateRecurringPaymentOutput represents the output of updating a recurring payment.
type UpdateRecurringPaymentOutput struct {
	Payment *RecurringPaymentOutput
}

// UpdateRecurringPaymentUseCase handles recurring payment updates. Payment
// history (status, lastPaid, early-payment markers) is never editable here;
// it only changes through mark-as-paid, refresh and rollover.
type UpdateRecurringPaymentUseCase struct {
	paymentRepo adapter.RecurringPaymentRepository
	clock       adapter.Clock
}

// NewUpdateRecurringPaymentUseCase creates a new UpdateRecurringPaymentUseCase instance.
func NewUpdateRecurringPaymentUseCase(
	paymentRepo adapter.RecurringPaymentRepository,
	clock adapter.Clock,
) *UpdateRecurringPaymentUseCase {
	return &UpdateRecurringPaymentUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute performs the recurring payment update.
func (uc *UpdateRecurringPaymentUseCase) Execute(ctx context.Context, input UpdateRecurringPaymentInput) (*UpdateRecurringPaymentOutput, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedPayment,
			"recurring payment belongs to another user",
			domainerror.ErrNotAuthorizedToModifyPayment,
		)
	}

	if input.Frequency != nil {
		if !input.Frequency.IsValid() {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidFrequency,
				"frequency must be 'monthly', 'weekly' or 'yearly'",
				domainerror.ErrInvalidFrequency,
			)
		}
		payment.Frequency = *input.Frequency
	}

	if input.DueDay != nil {
		if *input.DueDay < 1 || *input.DueDay > 31 {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidDueDay,
				"due day must be between 1 and 31",
				domainerror.ErrInvalidDueDay,
			)
		}
		payment.DueDay = *input.DueDay
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidPaymentAmount,
				"amount must be positive",
				domainerror.ErrInvalidPaymentAmount,
			)
		}
		payment.Amount = *input.Amount
	}

	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidPaymentType,
				"payment type must be 'expense' or 'income'",
				domainerror.ErrInvalidPaymentType,
			)
		}
		payment.Type = *input.Type
	}

	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidDetailedCategory,
				"unknown detail category",
				domainerror.ErrInvalidDetailedCategory,
			)
		}
		payment.Category = *input.Category
	}

	if input.Description != nil {
		payment.Description = *input.Description
	}
	if input.Subcategory != nil {
		payment.Subcategory = *input.Subcategory
	}

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update recurring payment: %w", err)
	}

	return &UpdateRecurringPaymentOutput{Payment: toOutput(payment, uc.clock.Now())}, nil
}
