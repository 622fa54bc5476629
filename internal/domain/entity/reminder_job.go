// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReminderStatus represents the status of a reminder job in the queue.
type ReminderStatus string

const (
	ReminderStatusPending    ReminderStatus = "pending"
	ReminderStatusProcessing ReminderStatus = "processing"
	ReminderStatusSent       ReminderStatus = "sent"
	ReminderStatusFailed     ReminderStatus = "failed"
)

// ReminderJob represents a queued overdue-payment reminder email. Jobs are
// enqueued when a status refresh observes payments escalating to overdue and
// are drained by the reminder worker. Sending is fire-and-forget: a failed
// reminder never affects payment state.
type ReminderJob struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	RecipientEmail string
	RecipientName  string
	// PaymentIDs lists the overdue recurring payments the reminder covers.
	PaymentIDs  []uuid.UUID
	Status      ReminderStatus
	Attempts    int
	MaxAttempts int
	LastError   string
	ResendID    string
	CreatedAt   time.Time
	ScheduledAt time.Time
	ProcessedAt *time.Time
}

// NewReminderJob creates a pending reminder job for the given user.
func NewReminderJob(userID uuid.UUID, recipientEmail, recipientName string, paymentIDs []uuid.UUID) *ReminderJob {
	now := time.Now().UTC()
	return &ReminderJob{
		ID:             uuid.New(),
		UserID:         userID,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		PaymentIDs:     paymentIDs,
		Status:         ReminderStatusPending,
		MaxAttempts:    3,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing marks the job as currently being processed.
func (j *ReminderJob) MarkProcessing() {
	j.Status = ReminderStatusProcessing
}

// MarkSent marks the job as successfully sent.
func (j *ReminderJob) MarkSent(resendID string) {
	j.Status = ReminderStatusSent
	j.ResendID = resendID
	now := time.Now().UTC()
	j.ProcessedAt = &now
}

// MarkFailed records a failed attempt and schedules a retry if attempts
// remain. Retry delays back off 1min then 5min.
func (j *ReminderJob) MarkFailed(err error, permanent bool) {
	j.Attempts++
	j.LastError = err.Error()

	if permanent || j.Attempts >= j.MaxAttempts {
		j.Status = ReminderStatusFailed
		now := time.Now().UTC()
		j.ProcessedAt = &now
		return
	}

	j.Status = ReminderStatusPending
	delays := []time.Duration{0, 1 * time.Minute, 5 * time.Minute}
	delay := delays[len(delays)-1]
	if j.Attempts < len(delays) {
		delay = delays[j.Attempts]
	}
	j.ScheduledAt = time.Now().UTC().Add(delay)
}
