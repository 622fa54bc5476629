// Package error defines domain-specific errors for the Budgetwise application.
package error

import "errors"

// Recurring payment domain errors.
var (
	// ErrRecurringPaymentNotFound is returned when a recurring payment is not found in the system.
	ErrRecurringPaymentNotFound = errors.New("recurring payment not found")

	// ErrNotAuthorizedToModifyPayment is returned when user is not authorized to modify a recurring payment.
	ErrNotAuthorizedToModifyPayment = errors.New("not authorized to modify recurring payment")

	// ErrInvalidFrequency is returned when the payment frequency is invalid.
	ErrInvalidFrequency = errors.New("invalid payment frequency")

	// ErrInvalidDueDay is returned when the due day is outside [1,31].
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrInvalidPaymentAmount is returned when the payment amount is not positive.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

	// ErrInvalidPaymentDate is returned when the payment date cannot be parsed.
	ErrInvalidPaymentDate = errors.New("invalid payment date")

	// ErrInvalidPaymentType is returned when the payment type is invalid.
	ErrInvalidPaymentType = errors.New("invalid payment type")
)

// RecurringErrorCode defines error codes for recurring payment errors.
// Format: RCP-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidFrequency     RecurringErrorCode = "RCP-010001"
	ErrCodeInvalidDueDay        RecurringErrorCode = "RCP-010002"
	ErrCodeInvalidPaymentAmount RecurringErrorCode = "RCP-010003"
	ErrCodeInvalidPaymentDate   RecurringErrorCode = "RCP-010004"
	ErrCodeInvalidPaymentType   RecurringErrorCode = "RCP-010005"

	// Lifecycle errors (02XXXX)
	ErrCodeRecurringPaymentNotFound RecurringErrorCode = "RCP-020001"
	ErrCodeNotAuthorizedPayment     RecurringErrorCode = "RCP-020002"
)

// RecurringError represents a recurring payment error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
