package dto

import (
	"github.com/budgetwise/backend/internal/application/usecase/analytics"
)

// BucketSummaryResponse represents one budget bucket against its target.
type BucketSummaryResponse struct {
	Bucket string `json:"bucket"`
	Spent  string `json:"spent"`
	Target string `json:"target"`
}

// DailyPointResponse represents one day of the income/expense series.
type DailyPointResponse struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// SummaryResponse represents the spending summary response.
type SummaryResponse struct {
	PeriodStart   string                  `json:"period_start"`
	PeriodEnd     string                  `json:"period_end"`
	IncomeTotal   string                  `json:"income_total"`
	ExpenseTotal  string                  `json:"expense_total"`
	NetTotal      string                  `json:"net_total"`
	AvgDailySpend string                  `json:"avg_daily_spend"`
	Buckets       []BucketSummaryResponse `json:"buckets"`
	Daily         []DailyPointResponse    `json:"daily"`
}

// ToSummaryResponse converts a GetSummaryOutput to a SummaryResponse DTO.
func ToSummaryResponse(output *analytics.GetSummaryOutput) SummaryResponse {
	buckets := make([]BucketSummaryResponse, len(output.Buckets))
	for i, b := range output.Buckets {
		buckets[i] = BucketSummaryResponse{
			Bucket: string(b.Bucket),
			Spent:  b.Spent.String(),
			Target: b.Target.String(),
		}
	}

	daily := make([]DailyPointResponse, len(output.Daily))
	for i, d := range output.Daily {
		daily[i] = DailyPointResponse{
			Date:    d.Date.Format("2006-01-02"),
			Income:  d.Income.String(),
			Expense: d.Expense.String(),
			Net:     d.Net.String(),
		}
	}

	return SummaryResponse{
		PeriodStart:   output.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     output.PeriodEnd.Format("2006-01-02"),
		IncomeTotal:   output.IncomeTotal.String(),
		ExpenseTotal:  output.ExpenseTotal.String(),
		NetTotal:      output.NetTotal.String(),
		AvgDailySpend: output.AvgDailySpend.String(),
		Buckets:       buckets,
		Daily:         daily,
	}
}
