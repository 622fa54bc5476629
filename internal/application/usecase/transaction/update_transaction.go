package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for updating a transaction.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	UserID           uuid.UUID
	TransactionID    uuid.UUID
	Date             *time.Time
	Description      *string
	Amount           *decimal.Decimal
	Type             *entity.TransactionType
	Category         *entity.BudgetBucket
	DetailedCategory *entity.DetailedCategory
	Subcategory      *string
}

// UpdateTransactionOutput represents the output of updating a transaction.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction updates. Recurring provenance
// fields (isRecurring, recurringID, paidEarly) are not editable.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(transactionRepo adapter.TransactionRepository) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"transaction belongs to another user",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		txn.Description = *input.Description
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionAmount,
				"amount must be positive",
				domainerror.ErrInvalidTransactionAmount,
			)
		}
		txn.Amount = *input.Amount
	}

	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"transaction type must be 'expense' or 'income'",
				domainerror.ErrInvalidTransactionType,
			)
		}
		txn.Type = *input.Type
	}

	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidBudgetBucket,
				"unknown budget bucket",
				domainerror.ErrInvalidBudgetBucket,
			)
		}
		txn.Category = *input.Category
	}

	if input.DetailedCategory != nil {
		if !input.DetailedCategory.IsValid() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidDetailedCategory,
				"unknown detail category",
				domainerror.ErrInvalidDetailedCategory,
			)
		}
		txn.DetailedCategory = *input.DetailedCategory
		// Keep the bucket consistent when only the detail changed.
		if input.Category == nil && txn.Type != entity.TransactionTypeIncome {
			txn.Category = entity.BudgetBucketFor(*input.DetailedCategory)
		}
	}

	if input.Date != nil {
		txn.Date = *input.Date
	}
	if input.Subcategory != nil {
		txn.Subcategory = *input.Subcategory
	}
	if txn.Type == entity.TransactionTypeIncome {
		txn.Category = entity.BucketIncome
	}

	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{Transaction: toOutput(txn)}, nil
}
