package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/billing"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// MarkAsPaidInput represents the input for marking a recurring payment as paid.
type MarkAsPaidInput struct {
	UserID      uuid.UUID
	PaymentID   uuid.UUID
	PaymentDate time.Time
}

// MarkAsPaidOutput represents the output of marking a recurring payment as paid.
type MarkAsPaidOutput struct {
	Payment *RecurringPaymentOutput
	// LedgerEntryID is the id of the transaction appended to the ledger, or
	// nil when the ledger write failed or was skipped.
	LedgerEntryID *uuid.UUID
}

// MarkAsPaidUseCase transitions a recurring payment to paid and appends a
// matching transaction to the ledger. The payment transition is authoritative:
// a failed ledger write is logged and reported on the output but never rolls
// the payment back.
type MarkAsPaidUseCase struct {
	paymentRepo     adapter.RecurringPaymentRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
	policy          EarlyPaymentPolicy
}

// NewMarkAsPaidUseCase creates a new MarkAsPaidUseCase instance.
func NewMarkAsPaidUseCase(
	paymentRepo adapter.RecurringPaymentRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
	policy EarlyPaymentPolicy,
) *MarkAsPaidUseCase {
	return &MarkAsPaidUseCase{
		paymentRepo:     paymentRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
		policy:          policy,
	}
}

// Execute performs the mark-as-paid transition.
func (uc *MarkAsPaidUseCase) Execute(ctx context.Context, input MarkAsPaidInput) (*MarkAsPaidOutput, error) {
	if input.PaymentDate.IsZero() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidPaymentDate,
			"payment date is required",
			domainerror.ErrInvalidPaymentDate,
		)
	}

	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedPayment,
			"recurring payment belongs to another user",
			domainerror.ErrNotAuthorizedToModifyPayment,
		)
	}

	now := uc.clock.Now()
	paidMonth := billing.MonthID(input.PaymentDate)

	// Evaluated against now rather than the (possibly backdated) payment
	// date: the act of settling happens now.
	paidEarly := uc.policy.IsEarly(now.Day(), payment.DueDay)

	payment.Status = entity.PaymentStatusPaid
	paymentDate := input.PaymentDate
	payment.LastPaid = &paymentDate
	payment.LastPaidMonth = &paidMonth
	payment.PaidEarly = paidEarly
	if paidEarly {
		payment.EarlyPaymentDate = &paymentDate
	} else {
		payment.EarlyPaymentDate = nil
	}

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update recurring payment: %w", err)
	}

	output := &MarkAsPaidOutput{Payment: toOutput(payment, now)}

	transaction := entity.NewRecurringTransaction(payment, input.PaymentDate, paidEarly)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		slog.Error("Failed to append ledger entry for paid recurring payment",
			"paymentID", payment.ID,
			"userID", payment.UserID,
			"error", err,
		)
		return output, nil
	}
	output.LedgerEntryID = &transaction.ID

	return output, nil
}
