// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// StatusUpdate is a staged status-only change for a single recurring payment,
// produced by a refresh pass and persisted as part of a batch.
type StatusUpdate struct {
	PaymentID uuid.UUID
	Status    entity.PaymentStatus
}

// RecurringPaymentRepository defines the interface for recurring payment
// persistence operations.
type RecurringPaymentRepository interface {
	// Create creates a new recurring payment in the database.
	Create(ctx context.Context, payment *entity.RecurringPayment) error

	// FindByID retrieves a recurring payment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringPayment, error)

	// FindByUser retrieves all recurring payments for a user, ordered by due day.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringPayment, error)

	// Update updates an existing recurring payment as a single record write.
	Update(ctx context.Context, payment *entity.RecurringPayment) error

	// UpdateStatuses applies the staged status updates atomically. The whole
	// batch commits or none of it does.
	UpdateStatuses(ctx context.Context, updates []StatusUpdate) error

	// UpdateStatus applies a single staged status update, used as the
	// best-effort fallback when the atomic batch fails.
	UpdateStatus(ctx context.Context, update StatusUpdate) error

	// ResetForMonth forcibly resets all of a user's payments to pending for
	// the given month ordinal, clearing early-payment markers. Atomic.
	ResetForMonth(ctx context.Context, userID uuid.UUID, monthID int) error

	// Delete removes a recurring payment. Ledger entries generated from it
	// are never touched.
	Delete(ctx context.Context, id uuid.UUID) error
}
