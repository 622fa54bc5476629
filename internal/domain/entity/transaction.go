// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a single ledger entry in the Budgetwise system.
// Entries are created by direct user input or emitted by the recurring
// payment coordinator when a payment is marked paid.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // Always positive; Type carries the sign
	Type        TransactionType
	Category    BudgetBucket
	// DetailedCategory carries the originating detail category when the
	// entry was sourced from a recurring payment, or the user's own label.
	DetailedCategory DetailedCategory
	Subcategory      string
	// IsRecurring is true for entries emitted by a recurring payment.
	// RecurringID is a non-owning back-reference to that payment; deleting
	// the payment never deletes its historical ledger entries.
	IsRecurring bool
	RecurringID *uuid.UUID
	PaidEarly   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity from direct user input.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category BudgetBucket,
	detailedCategory DetailedCategory,
	subcategory string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		Date:             date,
		Description:      description,
		Amount:           amount,
		Type:             transactionType,
		Category:         category,
		DetailedCategory: detailedCategory,
		Subcategory:      subcategory,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NewRecurringTransaction creates a ledger entry emitted by the recurring
// payment coordinator for a paid payment.
func NewRecurringTransaction(payment *RecurringPayment, paymentDate time.Time, paidEarly bool) *Transaction {
	category := BudgetBucketFor(payment.Category)
	if payment.Type == TransactionTypeIncome {
		category = BucketIncome
	}

	txn := NewTransaction(
		payment.UserID,
		paymentDate,
		payment.Description,
		payment.Amount,
		payment.Type,
		category,
		payment.Category,
		payment.Subcategory,
	)
	recurringID := payment.ID
	txn.IsRecurring = true
	txn.RecurringID = &recurringID
	txn.PaidEarly = paidEarly
	return txn
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}
