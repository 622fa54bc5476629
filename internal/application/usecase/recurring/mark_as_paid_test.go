package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/billing"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func TestMarkAsPaidUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("marks payment paid and appends ledger entry", func(t *testing.T) {
		payment := monthlyPayment(userID, 15, "89.90")
		paymentRepo := newFakePaymentRepo(payment)
		transactionRepo := &fakeTransactionRepo{}

		uc := NewMarkAsPaidUseCase(paymentRepo, transactionRepo, fixedClock{now}, DefaultEarlyPaymentPolicy())
		paymentDate := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

		output, err := uc.Execute(context.Background(), MarkAsPaidInput{
			UserID:      userID,
			PaymentID:   payment.ID,
			PaymentDate: paymentDate,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if payment.Status != entity.PaymentStatusPaid {
			t.Errorf("expected status paid, got %s", payment.Status)
		}
		if payment.LastPaid == nil || !payment.LastPaid.Equal(paymentDate) {
			t.Errorf("expected lastPaid %v, got %v", paymentDate, payment.LastPaid)
		}
		if payment.LastPaidMonth == nil || *payment.LastPaidMonth != billing.MonthID(paymentDate) {
			t.Errorf("expected lastPaidMonth %d, got %v", billing.MonthID(paymentDate), payment.LastPaidMonth)
		}
		if payment.PaidEarly {
			t.Error("expected paidEarly to be false")
		}

		if len(transactionRepo.created) != 1 {
			t.Fatalf("expected 1 ledger entry, got %d", len(transactionRepo.created))
		}
		txn := transactionRepo.created[0]
		if !txn.IsRecurring {
			t.Error("expected ledger entry to be marked recurring")
		}
		if txn.RecurringID == nil || *txn.RecurringID != payment.ID {
			t.Errorf("expected recurringID %s, got %v", payment.ID, txn.RecurringID)
		}
		if !txn.Date.Equal(paymentDate) {
			t.Errorf("expected ledger date %v, got %v", paymentDate, txn.Date)
		}
		if txn.Category != entity.BucketNeeds {
			t.Errorf("expected utilities to map to needs bucket, got %s", txn.Category)
		}
		if txn.DetailedCategory != entity.CategoryUtilities {
			t.Errorf("expected detailed category utilities, got %s", txn.DetailedCategory)
		}
		if output.LedgerEntryID == nil || *output.LedgerEntryID != txn.ID {
			t.Error("expected output to reference the ledger entry")
		}
	})

	t.Run("income payments land in the income bucket", func(t *testing.T) {
		payment := entity.NewRecurringPayment(
			userID, "Salary", decimal.RequireFromString("5000"),
			entity.CategorySalary, "", entity.FrequencyMonthly, 5,
			entity.TransactionTypeIncome,
		)
		paymentRepo := newFakePaymentRepo(payment)
		transactionRepo := &fakeTransactionRepo{}

		uc := NewMarkAsPaidUseCase(paymentRepo, transactionRepo, fixedClock{now}, DefaultEarlyPaymentPolicy())
		_, err := uc.Execute(context.Background(), MarkAsPaidInput{
			UserID:      userID,
			PaymentID:   payment.ID,
			PaymentDate: now,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if transactionRepo.created[0].Category != entity.BucketIncome {
			t.Errorf("expected income bucket, got %s", transactionRepo.created[0].Category)
		}
	})

	t.Run("detects early payments against the clock, not the payment date", func(t *testing.T) {
		payment := monthlyPayment(userID, 10, "50")
		paymentRepo := newFakePaymentRepo(payment)
		transactionRepo := &fakeTransactionRepo{}

		// Marked on the 25th for a bill due on the 10th, but backdated to
		// the 5th. The heuristic keys off the marking time.
		lateInMonth := time.Date(2026, time.March, 25, 9, 0, 0, 0, time.UTC)
		backdated := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

		uc := NewMarkAsPaidUseCase(paymentRepo, transactionRepo, fixedClock{lateInMonth}, DefaultEarlyPaymentPolicy())
		_, err := uc.Execute(context.Background(), MarkAsPaidInput{
			UserID:      userID,
			PaymentID:   payment.ID,
			PaymentDate: backdated,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !payment.PaidEarly {
			t.Error("expected paidEarly to be true")
		}
		if payment.EarlyPaymentDate == nil || !payment.EarlyPaymentDate.Equal(backdated) {
			t.Errorf("expected earlyPaymentDate %v, got %v", backdated, payment.EarlyPaymentDate)
		}
		if !transactionRepo.created[0].PaidEarly {
			t.Error("expected ledger entry to carry paidEarly")
		}
	})

	t.Run("no early payment when due day is past the threshold", func(t *testing.T) {
		payment := monthlyPayment(userID, 20, "50")
		paymentRepo := newFakePaymentRepo(payment)

		lateInMonth := time.Date(2026, time.March, 25, 9, 0, 0, 0, time.UTC)
		uc := NewMarkAsPaidUseCase(paymentRepo, &fakeTransactionRepo{}, fixedClock{lateInMonth}, DefaultEarlyPaymentPolicy())
		_, err := uc.Execute(context.Background(), MarkAsPaidInput{
			UserID:      userID,
			PaymentID:   payment.ID,
			PaymentDate: lateInMonth,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if payment.PaidEarly {
			t.Error("expected paidEarly to be false for due day 20")
		}
	})

	t.Run("ledger failure does not roll back the payment", func(t *testing.T) {
		payment := monthlyPayment(userID, 15, "89.90")
		paymentRepo := newFakePaymentRepo(payment)
		transactionRepo := &fakeTransactionRepo{failCreate: true}

		uc := NewMarkAsPaidUseCase(paymentRepo, transactionRepo, fixedClock{now}, DefaultEarlyPaymentPolicy())
		output, err := uc.Execute(context.Background(), MarkAsPaidInput{
			UserID:      userID,
			PaymentID:   payment.ID,
			PaymentDate: now,
		})
		if err != nil {
			t.Fatalf("expected success despite ledger failure, got %v", err)
		}

		if payment.Status != entity.PaymentStatusPaid {
			t.Errorf("expected status paid, got %s", payment.Status)
		}
		if output.LedgerEntryID != nil {
			t.Error("expected no ledger entry id on failed ledger write")
		}
	})

	t.Run("returns not found for unknown payment", func(t *testing.T) {
		uc := NewMarkAsPaidUseCase(newFakePaymentRepo(), &fakeTransactionRepo{}, fixedClock{now}, DefaultEarlyPaymentPolicy())
		_, err := uc.Execute(context.Background(), MarkAsPaidInput{
			UserID:      userID,
			PaymentID:   uuid.New(),
			PaymentDate: now,
		})
		if !errors.Is(err, domainerror.ErrRecurringPaymentNotFound) {
			t.Errorf("expected ErrRecurringPaymentNotFound, got %v", err)
		}
	})

	t.Run("rejects payments owned by another user", func(t *testing.T) {
		payment := monthlyPayment(uuid.New(), 15, "10")
		uc := NewMarkAsPaidUseCase(newFakePaymentRepo(payment), &fakeTransactionRepo{}, fixedClock{now}, DefaultEarlyPaymentPolicy())
		_, err := uc.Execute(context.Background(), MarkAsPaidInput{
			UserID:      userID,
			PaymentID:   payment.ID,
			PaymentDate: now,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyPayment) {
			t.Errorf("expected ErrNotAuthorizedToModifyPayment, got %v", err)
		}
	})

	t.Run("rejects a zero payment date", func(t *testing.T) {
		payment := monthlyPayment(userID, 15, "10")
		uc := NewMarkAsPaidUseCase(newFakePaymentRepo(payment), &fakeTransactionRepo{}, fixedClock{now}, DefaultEarlyPaymentPolicy())
		_, err := uc.Execute(context.Background(), MarkAsPaidInput{
			UserID:    userID,
			PaymentID: payment.ID,
		})
		if !errors.Is(err, domainerror.ErrInvalidPaymentDate) {
			t.Errorf("expected ErrInvalidPaymentDate, got %v", err)
		}
	})
}
