// Package error defines domain-specific errors for the Budgetwise application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidBudgetBucket is returned when the budget bucket is not part of the taxonomy.
	ErrInvalidBudgetBucket = errors.New("invalid budget bucket")

	// ErrInvalidDetailedCategory is returned when the detail category is not part of the taxonomy.
	ErrInvalidDetailedCategory = errors.New("invalid detailed category")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrEmptyDescription is returned when a description is required but missing.
	ErrEmptyDescription = errors.New("description is required")

	// ErrAdvisorUnavailable is returned when the category advisor service is not configured or unreachable.
	ErrAdvisorUnavailable = errors.New("category advisor unavailable")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010003"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidBudgetBucket      TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidDetailedCategory  TransactionErrorCode = "TXN-010006"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010007"
	ErrCodeEmptyDescription         TransactionErrorCode = "TXN-010008"

	// Advisor errors (02XXXX)
	ErrCodeAdvisorUnavailable TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
