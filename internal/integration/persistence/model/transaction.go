// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date             time.Time       `gorm:"type:date;not null;index"`
	Description      string          `gorm:"type:varchar(255);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type             string          `gorm:"type:varchar(10);not null;index"`
	Category         string          `gorm:"type:varchar(10);not null;index"`
	DetailedCategory string          `gorm:"type:varchar(30)"`
	Subcategory      string          `gorm:"type:varchar(100)"`
	IsRecurring      bool            `gorm:"default:false"`
	RecurringID      *uuid.UUID      `gorm:"type:uuid;index"`
	PaidEarly        bool            `gorm:"default:false"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
	DeletedAt        gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationship (not loaded by default, use Preload)
	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:               m.ID,
		UserID:           m.UserID,
		Date:             m.Date,
		Description:      m.Description,
		Amount:           m.Amount,
		Type:             entity.TransactionType(m.Type),
		Category:         entity.BudgetBucket(m.Category),
		DetailedCategory: entity.DetailedCategory(m.DetailedCategory),
		Subcategory:      m.Subcategory,
		IsRecurring:      m.IsRecurring,
		RecurringID:      m.RecurringID,
		PaidEarly:        m.PaidEarly,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:               transaction.ID,
		UserID:           transaction.UserID,
		Date:             transaction.Date,
		Description:      transaction.Description,
		Amount:           transaction.Amount,
		Type:             string(transaction.Type),
		Category:         string(transaction.Category),
		DetailedCategory: string(transaction.DetailedCategory),
		Subcategory:      transaction.Subcategory,
		IsRecurring:      transaction.IsRecurring,
		RecurringID:      transaction.RecurringID,
		PaidEarly:        transaction.PaidEarly,
		CreatedAt:        transaction.CreatedAt,
		UpdatedAt:        transaction.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}
