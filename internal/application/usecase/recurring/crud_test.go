package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func TestCreateRecurringPaymentUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	validInput := func() CreateRecurringPaymentInput {
		return CreateRecurringPaymentInput{
			UserID:      userID,
			Description: "Gym",
			Amount:      decimal.RequireFromString("45.00"),
			Category:    entity.CategoryPersonal,
			Frequency:   entity.FrequencyMonthly,
			DueDay:      7,
			Type:        entity.TransactionTypeExpense,
		}
	}

	t.Run("creates a pending payment with no history", func(t *testing.T) {
		paymentRepo := newFakePaymentRepo()
		uc := NewCreateRecurringPaymentUseCase(paymentRepo, fixedClock{now})

		output, err := uc.Execute(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Payment.Status != entity.PaymentStatusPending {
			t.Errorf("expected pending, got %s", output.Payment.Status)
		}
		stored := paymentRepo.payments[output.Payment.ID]
		if stored == nil {
			t.Fatal("expected payment to be persisted")
		}
		if stored.LastPaid != nil || stored.LastPaidMonth != nil {
			t.Error("expected new payment to have no payment history")
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(*CreateRecurringPaymentInput)
			wantErr error
		}{
			{"invalid frequency", func(in *CreateRecurringPaymentInput) { in.Frequency = "daily" }, domainerror.ErrInvalidFrequency},
			{"due day zero", func(in *CreateRecurringPaymentInput) { in.DueDay = 0 }, domainerror.ErrInvalidDueDay},
			{"due day too large", func(in *CreateRecurringPaymentInput) { in.DueDay = 32 }, domainerror.ErrInvalidDueDay},
			{"zero amount", func(in *CreateRecurringPaymentInput) { in.Amount = decimal.Zero }, domainerror.ErrInvalidPaymentAmount},
			{"negative amount", func(in *CreateRecurringPaymentInput) { in.Amount = decimal.RequireFromString("-5") }, domainerror.ErrInvalidPaymentAmount},
			{"invalid type", func(in *CreateRecurringPaymentInput) { in.Type = "transfer" }, domainerror.ErrInvalidPaymentType},
			{"unknown category", func(in *CreateRecurringPaymentInput) { in.Category = "crypto" }, domainerror.ErrInvalidDetailedCategory},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := validInput()
				tc.mutate(&input)

				uc := NewCreateRecurringPaymentUseCase(newFakePaymentRepo(), fixedClock{now})
				_, err := uc.Execute(context.Background(), input)
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			})
		}
	})
}

func TestUpdateRecurringPaymentUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	t.Run("updates provided fields and keeps the rest", func(t *testing.T) {
		payment := monthlyPayment(userID, 5, "100")
		paymentRepo := newFakePaymentRepo(payment)
		uc := NewUpdateRecurringPaymentUseCase(paymentRepo, fixedClock{now})

		amount := decimal.RequireFromString("120")
		dueDay := 9
		output, err := uc.Execute(context.Background(), UpdateRecurringPaymentInput{
			UserID:    userID,
			PaymentID: payment.ID,
			Amount:    &amount,
			DueDay:    &dueDay,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !payment.Amount.Equal(amount) {
			t.Errorf("expected amount 120, got %s", payment.Amount)
		}
		if payment.DueDay != 9 {
			t.Errorf("expected due day 9, got %d", payment.DueDay)
		}
		if payment.Description != "Internet" {
			t.Errorf("expected description unchanged, got %s", payment.Description)
		}
		if output.Payment.DueDay != 9 {
			t.Errorf("expected output due day 9, got %d", output.Payment.DueDay)
		}
	})

	t.Run("rejects invalid due day", func(t *testing.T) {
		payment := monthlyPayment(userID, 5, "100")
		uc := NewUpdateRecurringPaymentUseCase(newFakePaymentRepo(payment), fixedClock{now})

		dueDay := 40
		_, err := uc.Execute(context.Background(), UpdateRecurringPaymentInput{
			UserID:    userID,
			PaymentID: payment.ID,
			DueDay:    &dueDay,
		})
		if !errors.Is(err, domainerror.ErrInvalidDueDay) {
			t.Errorf("expected ErrInvalidDueDay, got %v", err)
		}
	})

	t.Run("rejects payments owned by another user", func(t *testing.T) {
		payment := monthlyPayment(uuid.New(), 5, "100")
		uc := NewUpdateRecurringPaymentUseCase(newFakePaymentRepo(payment), fixedClock{now})

		_, err := uc.Execute(context.Background(), UpdateRecurringPaymentInput{
			UserID:    userID,
			PaymentID: payment.ID,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyPayment) {
			t.Errorf("expected ErrNotAuthorizedToModifyPayment, got %v", err)
		}
	})
}

func TestDeleteRecurringPaymentUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("deletes the payment and keeps its ledger entries", func(t *testing.T) {
		payment := monthlyPayment(userID, 5, "100")
		paymentRepo := newFakePaymentRepo(payment)

		transactionRepo := &fakeTransactionRepo{}
		txn := entity.NewRecurringTransaction(payment, time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC), false)
		if err := transactionRepo.Create(context.Background(), txn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewDeleteRecurringPaymentUseCase(paymentRepo)
		if err := uc.Execute(context.Background(), DeleteRecurringPaymentInput{
			UserID:    userID,
			PaymentID: payment.ID,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, ok := paymentRepo.payments[payment.ID]; ok {
			t.Error("expected payment to be deleted")
		}

		remaining, err := transactionRepo.FindByRecurringID(context.Background(), payment.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 1 {
			t.Errorf("expected ledger entry to survive payment deletion, got %d entries", len(remaining))
		}
	})

	t.Run("returns not found for unknown payment", func(t *testing.T) {
		uc := NewDeleteRecurringPaymentUseCase(newFakePaymentRepo())
		err := uc.Execute(context.Background(), DeleteRecurringPaymentInput{
			UserID:    userID,
			PaymentID: uuid.New(),
		})
		if !errors.Is(err, domainerror.ErrRecurringPaymentNotFound) {
			t.Errorf("expected ErrRecurringPaymentNotFound, got %v", err)
		}
	})
}

func TestMonthlyRolloverUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, time.April, 1, 0, 5, 0, 0, time.UTC)

	payment := monthlyPayment(userID, 5, "100")
	paidAt := time.Date(2026, time.March, 28, 0, 0, 0, 0, time.UTC)
	payment.Status = entity.PaymentStatusPaid
	payment.LastPaid = &paidAt
	month := 2026*12 + 2
	payment.LastPaidMonth = &month
	payment.PaidEarly = true
	payment.EarlyPaymentDate = &paidAt

	paymentRepo := newFakePaymentRepo(payment)
	uc := NewMonthlyRolloverUseCase(paymentRepo, fixedClock{now})

	if err := uc.Execute(context.Background(), MonthlyRolloverInput{UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != entity.PaymentStatusPending {
		t.Errorf("expected pending after rollover, got %s", payment.Status)
	}
	if payment.PaidEarly || payment.EarlyPaymentDate != nil {
		t.Error("expected early-payment markers to be cleared")
	}
	// April 2026 ordinal.
	if paymentRepo.lastResetMonthID != 2026*12+3 {
		t.Errorf("expected reset month ordinal %d, got %d", 2026*12+3, paymentRepo.lastResetMonthID)
	}
	if paymentRepo.resetCalls != 1 {
		t.Errorf("expected 1 reset call, got %d", paymentRepo.resetCalls)
	}
}
