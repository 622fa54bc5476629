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

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	// Category is the budget bucket. Left empty, it is derived from
	// DetailedCategory; income entries always land in the income bucket.
	Category         entity.BudgetBucket
	DetailedCategory entity.DetailedCategory
	Subcategory      string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles direct (non-recurring) ledger entry
// creation. Entries sourced from recurring payments are appended by the
// mark-as-paid flow instead.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if input.DetailedCategory != "" && !input.DetailedCategory.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDetailedCategory,
			"unknown detail category",
			domainerror.ErrInvalidDetailedCategory,
		)
	}

	category := input.Category
	switch {
	case input.Type == entity.TransactionTypeIncome:
		category = entity.BucketIncome
	case category == "":
		category = entity.BudgetBucketFor(input.DetailedCategory)
	case !category.IsValid():
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidBudgetBucket,
			"unknown budget bucket",
			domainerror.ErrInvalidBudgetBucket,
		)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	txn := entity.NewTransaction(
		input.UserID,
		date,
		input.Description,
		input.Amount,
		input.Type,
		category,
		input.DetailedCategory,
		input.Subcategory,
	)

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{Transaction: toOutput(txn)}, nil
}
