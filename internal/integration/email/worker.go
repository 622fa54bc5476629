// Package email sends overdue payment reminders via Resend.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/email/templates"
)

// Worker drains the reminder queue and sends overdue payment emails.
type Worker struct {
	queue        adapter.ReminderQueueRepository
	paymentRepo  adapter.RecurringPaymentRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	appBaseURL   string
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the reminder worker.
type WorkerConfig struct {
	AppBaseURL   string
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new reminder worker.
func NewWorker(
	queue adapter.ReminderQueueRepository,
	paymentRepo adapter.RecurringPaymentRepository,
	sender adapter.EmailSender,
	renderer *templates.Renderer,
	config WorkerConfig,
) *Worker {
	return &Worker{
		queue:        queue,
		paymentRepo:  paymentRepo,
		sender:       sender,
		renderer:     renderer,
		appBaseURL:   config.AppBaseURL,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Reminder worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch fetches and processes a batch of pending reminders.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending reminder jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing reminder batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

// processJob processes a single reminder job.
func (w *Worker) processJob(ctx context.Context, job *entity.ReminderJob) {
	logger := slog.With(
		"job_id", job.ID,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return
	}

	payments := w.loadPayments(ctx, job)
	if len(payments) == 0 {
		// Everything on the job was paid or deleted since it was queued.
		job.MarkSent("")
		if err := w.queue.Update(ctx, job); err != nil {
			logger.Error("Failed to close empty reminder job", "error", err)
		}
		return
	}

	html, text, err := w.renderReminder(job, payments)
	if err != nil {
		logger.Error("Failed to render reminder template", "error", err)
		w.handleFailure(ctx, job, err, true) // Template errors are permanent
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: fmt.Sprintf("You have %d overdue payment(s)", len(payments)),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send reminder", "error", err)
		isPermanent := errors.Is(err, domainerror.ErrPermanentReminderFailure)
		w.handleFailure(ctx, job, err, isPermanent)
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Reminder sent", "resend_id", result.ResendID, "payments", len(payments))
}

// loadPayments resolves the job's payment ids to payments that are still
// overdue. Missing or settled payments are silently skipped.
func (w *Worker) loadPayments(ctx context.Context, job *entity.ReminderJob) []*entity.RecurringPayment {
	payments := make([]*entity.RecurringPayment, 0, len(job.PaymentIDs))
	for _, id := range job.PaymentIDs {
		payment, err := w.paymentRepo.FindByID(ctx, id)
		if err != nil {
			continue
		}
		if payment.Status != entity.PaymentStatusOverdue {
			continue
		}
		payments = append(payments, payment)
	}
	return payments
}

// renderReminder renders the overdue reminder for the job.
func (w *Worker) renderReminder(job *entity.ReminderJob, payments []*entity.RecurringPayment) (html, text string, err error) {
	data := templates.OverdueReminderData{
		UserName: job.RecipientName,
		AppURL:   w.appBaseURL,
	}
	for _, payment := range payments {
		data.Payments = append(data.Payments, templates.OverduePaymentData{
			Description: payment.Description,
			Amount:      payment.Amount.StringFixed(2),
			DueDay:      payment.DueDay,
		})
	}

	return w.renderer.Render("overdue_reminder", data)
}

// handleFailure handles a failed reminder job.
func (w *Worker) handleFailure(ctx context.Context, job *entity.ReminderJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.ReminderStatusFailed {
		slog.Warn("Reminder job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		slog.Info("Reminder job scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
	}
}

// ProcessNow processes all pending reminders immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
