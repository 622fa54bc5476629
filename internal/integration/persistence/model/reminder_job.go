// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// ReminderJobModel represents the reminder_queue table in the database.
type ReminderJobModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	RecipientEmail string         `gorm:"type:varchar(255);not null"`
	RecipientName  string         `gorm:"type:varchar(255)"`
	PaymentIDs     pq.StringArray `gorm:"type:uuid[];not null"`
	Status         string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts       int            `gorm:"not null;default:0"`
	MaxAttempts    int            `gorm:"not null;default:3"`
	LastError      string         `gorm:"type:text"`
	ResendID       string         `gorm:"type:varchar(100)"`
	CreatedAt      time.Time      `gorm:"not null"`
	ScheduledAt    time.Time      `gorm:"not null"`
	ProcessedAt    sql.NullTime   `gorm:"type:timestamptz"`
}

// TableName returns the table name for the ReminderJobModel.
func (ReminderJobModel) TableName() string {
	return "reminder_queue"
}

// ToEntity converts a ReminderJobModel to a domain ReminderJob entity.
func (m *ReminderJobModel) ToEntity() *entity.ReminderJob {
	paymentIDs := make([]uuid.UUID, 0, len(m.PaymentIDs))
	for _, raw := range m.PaymentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			slog.Warn("Skipping malformed payment id on reminder job", "jobID", m.ID, "value", raw)
			continue
		}
		paymentIDs = append(paymentIDs, id)
	}

	var processedAt *time.Time
	if m.ProcessedAt.Valid {
		processedAt = &m.ProcessedAt.Time
	}

	return &entity.ReminderJob{
		ID:             m.ID,
		UserID:         m.UserID,
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		PaymentIDs:     paymentIDs,
		Status:         entity.ReminderStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ResendID:       m.ResendID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    processedAt,
	}
}

// ReminderJobFromEntity creates a ReminderJobModel from a domain ReminderJob entity.
func ReminderJobFromEntity(job *entity.ReminderJob) *ReminderJobModel {
	paymentIDs := make(pq.StringArray, 0, len(job.PaymentIDs))
	for _, id := range job.PaymentIDs {
		paymentIDs = append(paymentIDs, id.String())
	}

	var processedAt sql.NullTime
	if job.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}

	return &ReminderJobModel{
		ID:             job.ID,
		UserID:         job.UserID,
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		PaymentIDs:     paymentIDs,
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ResendID:       job.ResendID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
		ProcessedAt:    processedAt,
	}
}
