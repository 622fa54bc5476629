package dto

import (
	"time"

	"github.com/budgetwise/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date             string  `json:"date"`
	Description      string  `json:"description" binding:"required"`
	Amount           float64 `json:"amount" binding:"required"`
	Type             string  `json:"type" binding:"required"`
	Category         string  `json:"category"`
	DetailedCategory string  `json:"detailed_category" binding:"required"`
	Subcategory      string  `json:"subcategory"`
}

// UpdateTransactionRequest represents the request body for a partial
// transaction update. Only the fields present are applied.
type UpdateTransactionRequest struct {
	Date             *string  `json:"date,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Amount           *float64 `json:"amount,omitempty"`
	Type             *string  `json:"type,omitempty"`
	Category         *string  `json:"category,omitempty"`
	DetailedCategory *string  `json:"detailed_category,omitempty"`
	Subcategory      *string  `json:"subcategory,omitempty"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Date             string    `json:"date"`
	Description      string    `json:"description"`
	Amount           string    `json:"amount"`
	Type             string    `json:"type"`
	Category         string    `json:"category"`
	DetailedCategory string    `json:"detailed_category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	IsRecurring      bool      `json:"is_recurring"`
	RecurringID      *string   `json:"recurring_id,omitempty"`
	PaidEarly        bool      `json:"paid_early"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	IncomeTotal  string                `json:"income_total"`
	ExpenseTotal string                `json:"expense_total"`
	NetTotal     string                `json:"net_total"`
}

// SuggestCategoryResponse represents the response for a category suggestion.
type SuggestCategoryResponse struct {
	Category   string  `json:"category"`
	Bucket     string  `json:"bucket"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:               txn.ID.String(),
		UserID:           txn.UserID.String(),
		Date:             txn.Date.Format("2006-01-02"),
		Description:      txn.Description,
		Amount:           txn.Amount.String(),
		Type:             string(txn.Type),
		Category:         string(txn.Category),
		DetailedCategory: string(txn.DetailedCategory),
		Subcategory:      txn.Subcategory,
		IsRecurring:      txn.IsRecurring,
		PaidEarly:        txn.PaidEarly,
		CreatedAt:        txn.CreatedAt,
		UpdatedAt:        txn.UpdatedAt,
	}

	if txn.RecurringID != nil {
		recurringID := txn.RecurringID.String()
		response.RecurringID = &recurringID
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to its DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		IncomeTotal:  output.IncomeTotal.String(),
		ExpenseTotal: output.ExpenseTotal.String(),
		NetTotal:     output.NetTotal.String(),
	}
}

// ToSuggestCategoryResponse converts a SuggestCategoryOutput to its DTO.
func ToSuggestCategoryResponse(output *transaction.SuggestCategoryOutput) SuggestCategoryResponse {
	return SuggestCategoryResponse{
		Category:   string(output.Category),
		Bucket:     string(output.Bucket),
		Confidence: output.Confidence,
		Reason:     output.Reason,
	}
}
