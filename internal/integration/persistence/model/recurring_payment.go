// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// RecurringPaymentModel represents the recurring_payments table in the database.
type RecurringPaymentModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description      string          `gorm:"type:varchar(255);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category         string          `gorm:"type:varchar(30);not null"`
	Subcategory      string          `gorm:"type:varchar(100)"`
	Frequency        string          `gorm:"type:varchar(10);not null"`
	DueDay           int             `gorm:"not null"`
	Type             string          `gorm:"type:varchar(10);not null"`
	Status           string          `gorm:"type:varchar(10);not null;index"`
	LastPaid         *time.Time      `gorm:"type:timestamptz"`
	LastPaidMonth    *int            `gorm:"type:integer"`
	PaidEarly        bool            `gorm:"default:false"`
	EarlyPaymentDate *time.Time      `gorm:"type:timestamptz"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`

	// Relationship (not loaded by default, use Preload)
	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the RecurringPaymentModel.
func (RecurringPaymentModel) TableName() string {
	return "recurring_payments"
}

// ToEntity converts a RecurringPaymentModel to a domain RecurringPayment entity.
func (m *RecurringPaymentModel) ToEntity() *entity.RecurringPayment {
	return &entity.RecurringPayment{
		ID:               m.ID,
		UserID:           m.UserID,
		Description:      m.Description,
		Amount:           m.Amount,
		Category:         entity.DetailedCategory(m.Category),
		Subcategory:      m.Subcategory,
		Frequency:        entity.Frequency(m.Frequency),
		DueDay:           m.DueDay,
		Type:             entity.TransactionType(m.Type),
		Status:           entity.PaymentStatus(m.Status),
		LastPaid:         m.LastPaid,
		LastPaidMonth:    m.LastPaidMonth,
		PaidEarly:        m.PaidEarly,
		EarlyPaymentDate: m.EarlyPaymentDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// RecurringPaymentFromEntity creates a RecurringPaymentModel from a domain entity.
func RecurringPaymentFromEntity(payment *entity.RecurringPayment) *RecurringPaymentModel {
	return &RecurringPaymentModel{
		ID:               payment.ID,
		UserID:           payment.UserID,
		Description:      payment.Description,
		Amount:           payment.Amount,
		Category:         string(payment.Category),
		Subcategory:      payment.Subcategory,
		Frequency:        string(payment.Frequency),
		DueDay:           payment.DueDay,
		Type:             string(payment.Type),
		Status:           string(payment.Status),
		LastPaid:         payment.LastPaid,
		LastPaidMonth:    payment.LastPaidMonth,
		PaidEarly:        payment.PaidEarly,
		EarlyPaymentDate: payment.EarlyPaymentDate,
		CreatedAt:        payment.CreatedAt,
		UpdatedAt:        payment.UpdatedAt,
	}
}
