// Package analytics contains reporting use cases over the transaction ledger.
package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type stubTransactionRepo struct {
	transactions []*entity.Transaction
}

func (r *stubTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.transactions = append(r.transactions, txn)
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (r *stubTransactionRepo) FindByFilter(_ context.Context, _ adapter.TransactionFilter) ([]*entity.Transaction, error) {
	return r.transactions, nil
}

func (r *stubTransactionRepo) FindByRecurringID(_ context.Context, _ uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *stubTransactionRepo) GetTotals(_ context.Context, _ adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return &entity.TransactionTotals{}, nil
}

func (r *stubTransactionRepo) Update(_ context.Context, _ *entity.Transaction) error { return nil }

func (r *stubTransactionRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func TestGetSummaryUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)

	txn := func(day int, amount string, txnType entity.TransactionType, bucket entity.BudgetBucket) *entity.Transaction {
		return entity.NewTransaction(
			userID,
			time.Date(2026, time.March, day, 10, 0, 0, 0, time.UTC),
			"entry",
			decimal.RequireFromString(amount),
			txnType,
			bucket,
			entity.CategoryOther,
			"",
		)
	}

	repo := &stubTransactionRepo{transactions: []*entity.Transaction{
		txn(2, "5000", entity.TransactionTypeIncome, entity.BucketIncome),
		txn(3, "1500", entity.TransactionTypeExpense, entity.BucketNeeds),
		txn(3, "300", entity.TransactionTypeExpense, entity.BucketWants),
		txn(10, "700", entity.TransactionTypeExpense, entity.BucketSavings),
	}}

	uc := NewGetSummaryUseCase(repo, fixedClock{now})
	output, err := uc.Execute(context.Background(), GetSummaryInput{UserID: userID, PeriodDays: 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.IncomeTotal.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("expected income 5000, got %s", output.IncomeTotal)
	}
	if !output.ExpenseTotal.Equal(decimal.RequireFromString("2500")) {
		t.Errorf("expected expenses 2500, got %s", output.ExpenseTotal)
	}
	if !output.NetTotal.Equal(decimal.RequireFromString("2500")) {
		t.Errorf("expected net 2500, got %s", output.NetTotal)
	}

	// 2500 spent over 30 days.
	wantAvg := decimal.RequireFromString("2500").Div(decimal.NewFromInt(30))
	if !output.AvgDailySpend.Equal(wantAvg) {
		t.Errorf("expected avg daily spend %s, got %s", wantAvg, output.AvgDailySpend)
	}

	wantTargets := map[entity.BudgetBucket]string{
		entity.BucketNeeds:   "2500", // 50% of 5000
		entity.BucketWants:   "1500", // 30%
		entity.BucketSavings: "1000", // 20%
	}
	wantSpent := map[entity.BudgetBucket]string{
		entity.BucketNeeds:   "1500",
		entity.BucketWants:   "300",
		entity.BucketSavings: "700",
	}
	for _, bucket := range output.Buckets {
		if !bucket.Target.Equal(decimal.RequireFromString(wantTargets[bucket.Bucket])) {
			t.Errorf("bucket %s: expected target %s, got %s", bucket.Bucket, wantTargets[bucket.Bucket], bucket.Target)
		}
		if !bucket.Spent.Equal(decimal.RequireFromString(wantSpent[bucket.Bucket])) {
			t.Errorf("bucket %s: expected spent %s, got %s", bucket.Bucket, wantSpent[bucket.Bucket], bucket.Spent)
		}
	}

	if len(output.Daily) != 3 {
		t.Fatalf("expected 3 daily points, got %d", len(output.Daily))
	}
	if !output.Daily[0].Date.Before(output.Daily[1].Date) || !output.Daily[1].Date.Before(output.Daily[2].Date) {
		t.Error("expected daily points in ascending date order")
	}
	// March 3rd carries both expenses.
	day3 := output.Daily[1]
	if !day3.Expense.Equal(decimal.RequireFromString("1800")) {
		t.Errorf("expected 1800 spent on day 3, got %s", day3.Expense)
	}
	if !day3.Net.Equal(decimal.RequireFromString("-1800")) {
		t.Errorf("expected net -1800 on day 3, got %s", day3.Net)
	}
}
