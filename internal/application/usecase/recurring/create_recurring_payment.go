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

// CreateRecurringPaymentInput represents the input for recurring payment creation.
type CreateRecurringPaymentInput struct {
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    entity.DetailedCategory
	Subcategory string
	Frequency   entity.Frequency
	DueDay      int
	Type        entity.TransactionType
}

// CreateRecurringPaymentOutput represents the output of recurring payment creation.
type CreateRecurringPaymentOutput struct {
	Payment *RecurringPaymentOutput
}

// CreateRecurringPaymentUseCase handles recurring payment creation logic.
type CreateRecurringPaymentUseCase struct {
	paymentRepo adapter.RecurringPaymentRepository
	clock       adapter.Clock
}

// NewCreateRecurringPaymentUseCase creates a new CreateRecurringPaymentUseCase instance.
func NewCreateRecurringPaymentUseCase(
	paymentRepo adapter.RecurringPaymentRepository,
	clock adapter.Clock,
) *CreateRecurringPaymentUseCase {
	return &CreateRecurringPaymentUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute performs the recurring payment creation. New payments start
// pending with no payment history.
func (uc *CreateRecurringPaymentUseCase) Execute(ctx context.Context, input CreateRecurringPaymentInput) (*CreateRecurringPaymentOutput, error) {
	if !input.Frequency.IsValid() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be 'monthly', 'weekly' or 'yearly'",
			domainerror.ErrInvalidFrequency,
		)
	}

	if input.DueDay < 1 || input.DueDay > 31 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be positive",
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidPaymentType,
			"payment type must be 'expense' or 'income'",
			domainerror.ErrInvalidPaymentType,
		)
	}

	if !input.Category.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDetailedCategory,
			"unknown detail category",
			domainerror.ErrInvalidDetailedCategory,
		)
	}

	payment := entity.NewRecurringPayment(
		input.UserID,
		input.Description,
		input.Amount,
		input.Category,
		input.Subcategory,
		input.Frequency,
		input.DueDay,
		input.Type,
	)

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create recurring payment: %w", err)
	}

	return &CreateRecurringPaymentOutput{
		Payment: toOutput(payment, uc.clock.Now()),
	}, nil
}
