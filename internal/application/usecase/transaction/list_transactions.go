package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Filter adapter.TransactionFilter
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsUseCase handles transaction listing with filters and totals.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.FindByFilter(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute transaction totals: %w", err)
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, 0, len(transactions)),
		IncomeTotal:  totals.IncomeTotal,
		ExpenseTotal: totals.ExpenseTotal,
		NetTotal:     totals.NetTotal,
	}
	for _, txn := range transactions {
		output.Transactions = append(output.Transactions, toOutput(txn))
	}

	return output, nil
}
