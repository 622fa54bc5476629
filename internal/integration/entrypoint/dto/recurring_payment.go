package dto

import (
	"time"

	"github.com/budgetwise/backend/internal/application/usecase/recurring"
)

// CreateRecurringPaymentRequest represents the request body for recurring payment creation.
type CreateRecurringPaymentRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Subcategory string  `json:"subcategory"`
	Frequency   string  `json:"frequency" binding:"required"`
	DueDay      int     `json:"due_day" binding:"required"`
	Type        string  `json:"type" binding:"required"`
}

// UpdateRecurringPaymentRequest represents the request body for a partial
// recurring payment update. Only the fields present are applied.
type UpdateRecurringPaymentRequest struct {
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Frequency   *string  `json:"frequency,omitempty"`
	DueDay      *int     `json:"due_day,omitempty"`
	Type        *string  `json:"type,omitempty"`
}

// MarkAsPaidRequest represents the request body for marking a payment as paid.
// PaymentDate defaults to today when omitted.
type MarkAsPaidRequest struct {
	PaymentDate string `json:"payment_date,omitempty"`
}

// RecurringPaymentResponse represents a recurring payment in API responses.
type RecurringPaymentResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Description      string    `json:"description"`
	Amount           string    `json:"amount"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	Frequency        string    `json:"frequency"`
	DueDay           int       `json:"due_day"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	LastPaid         *string   `json:"last_paid,omitempty"`
	PaidEarly        bool      `json:"paid_early"`
	EarlyPaymentDate *string   `json:"early_payment_date,omitempty"`
	NextDueDate      string    `json:"next_due_date"`
	DaysUntilDue     int       `json:"days_until_due"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RecurringPaymentListResponse represents the response for listing recurring payments.
type RecurringPaymentListResponse struct {
	Payments              []RecurringPaymentResponse `json:"payments"`
	OutstandingTotal      string                     `json:"outstanding_total"`
	PaidTotal             string                     `json:"paid_total"`
	OverdueCount          int                        `json:"overdue_count"`
	MonthlyRecurringTotal string                     `json:"monthly_recurring_total"`
}

// MarkAsPaidResponse represents the response for marking a payment as paid.
// LedgerEntryID is absent when the ledger write failed or was skipped.
type MarkAsPaidResponse struct {
	Payment       RecurringPaymentResponse `json:"payment"`
	LedgerEntryID *string                  `json:"ledger_entry_id,omitempty"`
}

// ToRecurringPaymentResponse converts a RecurringPaymentOutput to its DTO.
func ToRecurringPaymentResponse(p *recurring.RecurringPaymentOutput) RecurringPaymentResponse {
	response := RecurringPaymentResponse{
		ID:           p.ID.String(),
		UserID:       p.UserID.String(),
		Description:  p.Description,
		Amount:       p.Amount.String(),
		Category:     string(p.Category),
		Subcategory:  p.Subcategory,
		Frequency:    string(p.Frequency),
		DueDay:       p.DueDay,
		Type:         string(p.Type),
		Status:       string(p.Status),
		PaidEarly:    p.PaidEarly,
		NextDueDate:  p.NextDueDate.Format("2006-01-02"),
		DaysUntilDue: p.DaysUntilDue,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.LastPaid != nil {
		lastPaid := p.LastPaid.Format("2006-01-02")
		response.LastPaid = &lastPaid
	}
	if p.EarlyPaymentDate != nil {
		earlyDate := p.EarlyPaymentDate.Format("2006-01-02")
		response.EarlyPaymentDate = &earlyDate
	}

	return response
}

// ToRecurringPaymentListResponse converts a ListRecurringPaymentsOutput to its DTO.
func ToRecurringPaymentListResponse(output *recurring.ListRecurringPaymentsOutput) RecurringPaymentListResponse {
	payments := make([]RecurringPaymentResponse, len(output.Payments))
	for i, p := range output.Payments {
		payments[i] = ToRecurringPaymentResponse(p)
	}

	return RecurringPaymentListResponse{
		Payments:              payments,
		OutstandingTotal:      output.OutstandingTotal.String(),
		PaidTotal:             output.PaidTotal.String(),
		OverdueCount:          output.OverdueCount,
		MonthlyRecurringTotal: output.MonthlyRecurringTotal.String(),
	}
}

// ToMarkAsPaidResponse converts a MarkAsPaidOutput to its DTO.
func ToMarkAsPaidResponse(output *recurring.MarkAsPaidOutput) MarkAsPaidResponse {
	response := MarkAsPaidResponse{
		Payment: ToRecurringPaymentResponse(output.Payment),
	}
	if output.LedgerEntryID != nil {
		id := output.LedgerEntryID.String()
		response.LedgerEntryID = &id
	}
	return response
}
