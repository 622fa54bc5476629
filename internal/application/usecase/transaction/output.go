// Package transaction contains transaction-related use cases.
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// TransactionOutput is the transaction representation returned by use cases.
type TransactionOutput struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Date             time.Time
	Description      string
	Amount           decimal.Decimal
	Type             entity.TransactionType
	Category         entity.BudgetBucket
	DetailedCategory entity.DetailedCategory
	Subcategory      string
	IsRecurring      bool
	RecurringID      *uuid.UUID
	PaidEarly        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func toOutput(txn *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:               txn.ID,
		UserID:           txn.UserID,
		Date:             txn.Date,
		Description:      txn.Description,
		Amount:           txn.Amount,
		Type:             txn.Type,
		Category:         txn.Category,
		DetailedCategory: txn.DetailedCategory,
		Subcategory:      txn.Subcategory,
		IsRecurring:      txn.IsRecurring,
		RecurringID:      txn.RecurringID,
		PaidEarly:        txn.PaidEarly,
		CreatedAt:        txn.CreatedAt,
		UpdatedAt:        txn.UpdatedAt,
	}
}
