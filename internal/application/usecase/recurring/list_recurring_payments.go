package recurring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/billing"
	"github.com/budgetwise/backend/internal/domain/entity"
)

// ListRecurringPaymentsInput represents the input for listing recurring payments.
type ListRecurringPaymentsInput struct {
	UserID uuid.UUID
}

// ListRecurringPaymentsOutput represents the output of listing recurring payments.
// Statuses are current as of the refresh this call performed.
type ListRecurringPaymentsOutput struct {
	Payments []*RecurringPaymentOutput
	// OutstandingTotal sums pending and overdue amounts, PaidTotal the paid
	// ones. OverdueCount counts overdue payments.
	OutstandingTotal decimal.Decimal
	PaidTotal        decimal.Decimal
	OverdueCount     int
	// MonthlyRecurringTotal is the monthly-equivalent sum of all recurring
	// expenses (income excluded).
	MonthlyRecurringTotal decimal.Decimal
}

// ListRecurringPaymentsUseCase loads a user's recurring payments and lazily
// refreshes their statuses: every payment's status is recomputed as of now,
// and changed statuses are persisted as one atomic batch. When the batch
// write fails the refresh degrades to best-effort per-record updates; the
// call itself still succeeds with current statuses.
type ListRecurringPaymentsUseCase struct {
	paymentRepo   adapter.RecurringPaymentRepository
	userRepo      adapter.UserRepository
	reminderQueue adapter.ReminderQueueRepository // nil disables reminders
	clock         adapter.Clock
}

// NewListRecurringPaymentsUseCase creates a new ListRecurringPaymentsUseCase instance.
func NewListRecurringPaymentsUseCase(
	paymentRepo adapter.RecurringPaymentRepository,
	userRepo adapter.UserRepository,
	reminderQueue adapter.ReminderQueueRepository,
	clock adapter.Clock,
) *ListRecurringPaymentsUseCase {
	return &ListRecurringPaymentsUseCase{
		paymentRepo:   paymentRepo,
		userRepo:      userRepo,
		reminderQueue: reminderQueue,
		clock:         clock,
	}
}

// Execute performs the listing with a lazy status refresh.
func (uc *ListRecurringPaymentsUseCase) Execute(ctx context.Context, input ListRecurringPaymentsInput) (*ListRecurringPaymentsOutput, error) {
	payments, err := uc.paymentRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring payments: %w", err)
	}

	now := uc.clock.Now()

	var staged []adapter.StatusUpdate
	var newlyOverdue []uuid.UUID
	for _, p := range payments {
		next := billing.ComputeStatus(p, now)
		if next == p.Status {
			continue
		}
		staged = append(staged, adapter.StatusUpdate{PaymentID: p.ID, Status: next})
		if next == entity.PaymentStatusOverdue {
			newlyOverdue = append(newlyOverdue, p.ID)
		}
		p.Status = next
	}

	if len(staged) > 0 {
		uc.persistStatuses(ctx, staged)
		uc.enqueueOverdueReminder(ctx, input.UserID, newlyOverdue)
	}

	output := &ListRecurringPaymentsOutput{
		Payments:              make([]*RecurringPaymentOutput, 0, len(payments)),
		OutstandingTotal:      decimal.Zero,
		PaidTotal:             decimal.Zero,
		MonthlyRecurringTotal: decimal.Zero,
	}

	for _, p := range payments {
		output.Payments = append(output.Payments, toOutput(p, now))

		switch {
		case p.IsOutstanding():
			output.OutstandingTotal = output.OutstandingTotal.Add(p.Amount)
		case p.Status == entity.PaymentStatusPaid:
			output.PaidTotal = output.PaidTotal.Add(p.Amount)
		}
		if p.Status == entity.PaymentStatusOverdue {
			output.OverdueCount++
		}
		if p.Type == entity.TransactionTypeExpense {
			output.MonthlyRecurringTotal = output.MonthlyRecurringTotal.Add(p.MonthlyEquivalentAmount())
		}
	}

	return output, nil
}

// persistStatuses writes the staged updates atomically, falling back to
// best-effort per-record writes if the batch cannot commit. Individual
// failures are logged and skipped; the refresh never fails because of them.
func (uc *ListRecurringPaymentsUseCase) persistStatuses(ctx context.Context, staged []adapter.StatusUpdate) {
	if err := uc.paymentRepo.UpdateStatuses(ctx, staged); err == nil {
		return
	} else {
		slog.Warn("Batch status update failed, falling back to per-record updates",
			"count", len(staged),
			"error", err,
		)
	}

	for _, update := range staged {
		if err := uc.paymentRepo.UpdateStatus(ctx, update); err != nil {
			slog.Warn("Failed to persist recurring payment status",
				"paymentID", update.PaymentID,
				"status", update.Status,
				"error", err,
			)
		}
	}
}

// enqueueOverdueReminder queues at most one reminder email per user per
// refresh run, covering the payments that just escalated to overdue.
// Fire-and-forget: failures are logged and never affect payment state.
func (uc *ListRecurringPaymentsUseCase) enqueueOverdueReminder(ctx context.Context, userID uuid.UUID, paymentIDs []uuid.UUID) {
	if uc.reminderQueue == nil || len(paymentIDs) == 0 {
		return
	}

	pending, err := uc.reminderQueue.HasPendingForUser(ctx, userID)
	if err != nil || pending {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.Warn("Failed to load user for overdue reminder", "userID", userID, "error", err)
		return
	}
	if !user.RecurringReminders {
		return
	}

	job := entity.NewReminderJob(userID, user.Email, user.Name, paymentIDs)
	if err := uc.reminderQueue.Create(ctx, job); err != nil {
		slog.Warn("Failed to queue overdue reminder", "userID", userID, "error", err)
	}
}
