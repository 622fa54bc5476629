// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// fakeTransactionRepo is an in-memory TransactionRepository.
type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
}

func newFakeTransactionRepo(transactions ...*entity.Transaction) *fakeTransactionRepo {
	repo := &fakeTransactionRepo{transactions: make(map[uuid.UUID]*entity.Transaction)}
	for _, txn := range transactions {
		repo.transactions[txn.ID] = txn
	}
	return repo
}

func (r *fakeTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.transactions[txn.ID] = txn
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return txn, nil
}

func (r *fakeTransactionRepo) FindByFilter(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, txn := range r.transactions {
		if txn.UserID != filter.UserID {
			continue
		}
		if filter.Type != nil && txn.Type != *filter.Type {
			continue
		}
		if filter.Category != nil && txn.Category != *filter.Category {
			continue
		}
		result = append(result, txn)
	}
	return result, nil
}

func (r *fakeTransactionRepo) FindByRecurringID(_ context.Context, recurringID uuid.UUID) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, txn := range r.transactions {
		if txn.RecurringID != nil && *txn.RecurringID == recurringID {
			result = append(result, txn)
		}
	}
	return result, nil
}

func (r *fakeTransactionRepo) GetTotals(_ context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	totals := &entity.TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
		NetTotal:     decimal.Zero,
	}
	for _, txn := range r.transactions {
		if txn.UserID != filter.UserID {
			continue
		}
		if txn.Type == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(txn.Amount)
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(txn.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, txn *entity.Transaction) error {
	if _, ok := r.transactions[txn.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	r.transactions[txn.ID] = txn
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.transactions, id)
	return nil
}

func TestCreateTransactionUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("derives the bucket from the detail category", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewCreateTransactionUseCase(repo)

		output, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:           userID,
			Date:             date,
			Description:      "Supermarket",
			Amount:           decimal.RequireFromString("230.50"),
			Type:             entity.TransactionTypeExpense,
			DetailedCategory: entity.CategoryGroceries,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Transaction.Category != entity.BucketNeeds {
			t.Errorf("expected groceries to land in needs, got %s", output.Transaction.Category)
		}
		if output.Transaction.IsRecurring {
			t.Error("expected direct entry to not be recurring")
		}
	})

	t.Run("income always lands in the income bucket", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo())

		output, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:      userID,
			Date:        date,
			Description: "Freelance",
			Amount:      decimal.RequireFromString("800"),
			Type:        entity.TransactionTypeIncome,
			Category:    entity.BucketWants, // Ignored for income.
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Transaction.Category != entity.BucketIncome {
			t.Errorf("expected income bucket, got %s", output.Transaction.Category)
		}
	})

	t.Run("unknown detail category falls back to wants when bucket omitted", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo())

		output, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:           userID,
			Date:             date,
			Description:      "Misc",
			Amount:           decimal.RequireFromString("10"),
			Type:             entity.TransactionTypeExpense,
			DetailedCategory: entity.CategoryOther,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.Category != entity.BucketWants {
			t.Errorf("expected wants fallback, got %s", output.Transaction.Category)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo())

		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:      userID,
			Date:        date,
			Description: "Bad",
			Amount:      decimal.Zero,
			Type:        entity.TransactionTypeExpense,
		})
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})
}

func TestUpdateTransactionUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	newTxn := func() *entity.Transaction {
		return entity.NewTransaction(
			userID, date, "Supermarket",
			decimal.RequireFromString("100"),
			entity.TransactionTypeExpense,
			entity.BucketNeeds, entity.CategoryGroceries, "",
		)
	}

	t.Run("recategorizing the detail moves the bucket", func(t *testing.T) {
		txn := newTxn()
		uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(txn))

		category := entity.CategoryEntertainment
		output, err := uc.Execute(context.Background(), UpdateTransactionInput{
			UserID:           userID,
			TransactionID:    txn.ID,
			DetailedCategory: &category,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Transaction.Category != entity.BucketWants {
			t.Errorf("expected entertainment to move the entry to wants, got %s", output.Transaction.Category)
		}
	})

	t.Run("rejects transactions owned by another user", func(t *testing.T) {
		txn := newTxn()
		uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(txn))

		_, err := uc.Execute(context.Background(), UpdateTransactionInput{
			UserID:        uuid.New(),
			TransactionID: txn.ID,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
			t.Errorf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
		}
	})
}

func TestDeleteTransactionUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("deletes the entry", func(t *testing.T) {
		txn := entity.NewTransaction(
			userID, date, "Supermarket",
			decimal.RequireFromString("100"),
			entity.TransactionTypeExpense,
			entity.BucketNeeds, entity.CategoryGroceries, "",
		)
		repo := newFakeTransactionRepo(txn)
		uc := NewDeleteTransactionUseCase(repo)

		if err := uc.Execute(context.Background(), DeleteTransactionInput{
			UserID:        userID,
			TransactionID: txn.ID,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, ok := repo.transactions[txn.ID]; ok {
			t.Error("expected transaction to be deleted")
		}
	})

	t.Run("returns not found for unknown transaction", func(t *testing.T) {
		uc := NewDeleteTransactionUseCase(newFakeTransactionRepo())
		err := uc.Execute(context.Background(), DeleteTransactionInput{
			UserID:        userID,
			TransactionID: uuid.New(),
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

// fakeAdvisor returns a canned suggestion.
type fakeAdvisor struct {
	available  bool
	suggestion *adapter.CategorySuggestion
	err        error
}

func (a *fakeAdvisor) IsAvailable() bool { return a.available }

func (a *fakeAdvisor) Suggest(_ context.Context, _ string) (*adapter.CategorySuggestion, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.suggestion, nil
}

func TestSuggestCategoryUseCase_Execute(t *testing.T) {
	t.Run("returns the advisor's suggestion with its bucket", func(t *testing.T) {
		advisor := &fakeAdvisor{
			available: true,
			suggestion: &adapter.CategorySuggestion{
				Category:   entity.CategoryDining,
				Confidence: 0.92,
				Reason:     "restaurant name in description",
			},
		}
		uc := NewSuggestCategoryUseCase(advisor)

		output, err := uc.Execute(context.Background(), SuggestCategoryInput{Description: "Pizzaria Bella"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Category != entity.CategoryDining {
			t.Errorf("expected dining, got %s", output.Category)
		}
		if output.Bucket != entity.BucketWants {
			t.Errorf("expected wants bucket, got %s", output.Bucket)
		}
	})

	t.Run("clamps unknown advisor categories to other", func(t *testing.T) {
		advisor := &fakeAdvisor{
			available:  true,
			suggestion: &adapter.CategorySuggestion{Category: "crypto", Confidence: 0.4},
		}
		uc := NewSuggestCategoryUseCase(advisor)

		output, err := uc.Execute(context.Background(), SuggestCategoryInput{Description: "BTC"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Category != entity.CategoryOther {
			t.Errorf("expected other, got %s", output.Category)
		}
	})

	t.Run("fails when the advisor is not configured", func(t *testing.T) {
		uc := NewSuggestCategoryUseCase(&fakeAdvisor{available: false})
		_, err := uc.Execute(context.Background(), SuggestCategoryInput{Description: "Pizzaria"})
		if !errors.Is(err, domainerror.ErrAdvisorUnavailable) {
			t.Errorf("expected ErrAdvisorUnavailable, got %v", err)
		}
	})

	t.Run("rejects an empty description", func(t *testing.T) {
		uc := NewSuggestCategoryUseCase(&fakeAdvisor{available: true})
		_, err := uc.Execute(context.Background(), SuggestCategoryInput{Description: "   "})
		if !errors.Is(err, domainerror.ErrEmptyDescription) {
			t.Errorf("expected ErrEmptyDescription, got %v", err)
		}
	})
}
