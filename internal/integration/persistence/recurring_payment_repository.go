// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

// recurringPaymentRepository implements the adapter.RecurringPaymentRepository interface.
type recurringPaymentRepository struct {
	db *gorm.DB
}

// NewRecurringPaymentRepository creates a new recurring payment repository instance.
func NewRecurringPaymentRepository(db *gorm.DB) adapter.RecurringPaymentRepository {
	return &recurringPaymentRepository{
		db: db,
	}
}

// Create creates a new recurring payment in the database.
func (r *recurringPaymentRepository) Create(ctx context.Context, payment *entity.RecurringPayment) error {
	paymentModel := model.RecurringPaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Create(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a recurring payment by its ID.
func (r *recurringPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringPayment, error) {
	var paymentModel model.RecurringPaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringPaymentNotFound,
				"recurring payment not found",
				domainerror.ErrRecurringPaymentNotFound,
			)
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByUser retrieves all recurring payments for a user, ordered by due day.
func (r *recurringPaymentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringPayment, error) {
	var models []model.RecurringPaymentModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_day ASC, created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.RecurringPayment, len(models))
	for i, m := range models {
		payments[i] = m.ToEntity()
	}
	return payments, nil
}

// Update updates an existing recurring payment as a single record write.
func (r *recurringPaymentRepository) Update(ctx context.Context, payment *entity.RecurringPayment) error {
	payment.UpdatedAt = time.Now().UTC()
	paymentModel := model.RecurringPaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Save(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// UpdateStatuses applies the staged status updates inside one transaction.
// The whole batch commits or none of it does.
func (r *recurringPaymentRepository) UpdateStatuses(ctx context.Context, updates []adapter.StatusUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, update := range updates {
			result := tx.Model(&model.RecurringPaymentModel{}).
				Where("id = ?", update.PaymentID).
				Updates(map[string]any{
					"status":     string(update.Status),
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// UpdateStatus applies a single staged status update.
func (r *recurringPaymentRepository) UpdateStatus(ctx context.Context, update adapter.StatusUpdate) error {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringPaymentModel{}).
		Where("id = ?", update.PaymentID).
		Updates(map[string]any{
			"status":     string(update.Status),
			"updated_at": time.Now().UTC(),
		})
	return result.Error
}

// ResetForMonth resets all of a user's payments to pending for the given
// month ordinal, clearing early-payment markers. Applied atomically.
func (r *recurringPaymentRepository) ResetForMonth(ctx context.Context, userID uuid.UUID, monthID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RecurringPaymentModel{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"status":             string(entity.PaymentStatusPending),
				"last_paid_month":    monthID,
				"paid_early":         false,
				"early_payment_date": nil,
				"updated_at":         time.Now().UTC(),
			})
		return result.Error
	})
}

// Delete removes a recurring payment. Ledger entries generated from it are
// never touched.
func (r *recurringPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
