// Package analytics contains reporting use cases over the transaction ledger.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
)

// DefaultPeriodDays is the reporting window used when the caller does not
// pick one.
const DefaultPeriodDays = 30

// GetSummaryInput represents the input for the spending summary.
type GetSummaryInput struct {
	UserID     uuid.UUID
	PeriodDays int
}

// BucketSummary aggregates one budget bucket against its 50/30/20 target.
type BucketSummary struct {
	Bucket entity.BudgetBucket
	Spent  decimal.Decimal
	// Target is the bucket's share of period income (0.50, 0.30 or 0.20).
	Target decimal.Decimal
}

// DailyPoint is one day of the income/expense series.
type DailyPoint struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// GetSummaryOutput represents the output of the spending summary.
type GetSummaryOutput struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	IncomeTotal   decimal.Decimal
	ExpenseTotal  decimal.Decimal
	NetTotal      decimal.Decimal
	AvgDailySpend decimal.Decimal
	Buckets       []BucketSummary
	Daily         []DailyPoint
}

// GetSummaryUseCase aggregates the ledger into period totals, per-bucket
// spending against 50/30/20 targets, and a daily series for charts.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute computes the summary for a period of PeriodDays ending now.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	periodDays := input.PeriodDays
	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}

	end := uc.clock.Now()
	start := end.AddDate(0, 0, -periodDays)

	transactions, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
	}

	output := &GetSummaryOutput{
		PeriodStart:  start,
		PeriodEnd:    end,
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}

	spentByBucket := map[entity.BudgetBucket]decimal.Decimal{
		entity.BucketNeeds:   decimal.Zero,
		entity.BucketWants:   decimal.Zero,
		entity.BucketSavings: decimal.Zero,
	}
	byDay := make(map[string]*DailyPoint)

	for _, txn := range transactions {
		day := txn.Date.Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			midnight := time.Date(txn.Date.Year(), txn.Date.Month(), txn.Date.Day(), 0, 0, 0, 0, time.UTC)
			point = &DailyPoint{Date: midnight, Income: decimal.Zero, Expense: decimal.Zero}
			byDay[day] = point
		}

		if txn.Type == entity.TransactionTypeIncome {
			output.IncomeTotal = output.IncomeTotal.Add(txn.Amount)
			point.Income = point.Income.Add(txn.Amount)
			continue
		}

		output.ExpenseTotal = output.ExpenseTotal.Add(txn.Amount)
		point.Expense = point.Expense.Add(txn.Amount)
		if _, tracked := spentByBucket[txn.Category]; tracked {
			spentByBucket[txn.Category] = spentByBucket[txn.Category].Add(txn.Amount)
		}
	}

	output.NetTotal = output.IncomeTotal.Sub(output.ExpenseTotal)
	output.AvgDailySpend = output.ExpenseTotal.Div(decimal.NewFromInt(int64(periodDays)))

	for _, bucket := range []entity.BudgetBucket{entity.BucketNeeds, entity.BucketWants, entity.BucketSavings} {
		output.Buckets = append(output.Buckets, BucketSummary{
			Bucket: bucket,
			Spent:  spentByBucket[bucket],
			Target: output.IncomeTotal.Mul(decimal.NewFromFloat(bucket.BudgetShare())),
		})
	}

	output.Daily = make([]DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		point.Net = point.Income.Sub(point.Expense)
		output.Daily = append(output.Daily, *point)
	}
	sort.Slice(output.Daily, func(i, j int) bool {
		return output.Daily[i].Date.Before(output.Daily[j].Date)
	})

	return output, nil
}
