// Package error defines domain-specific errors for the Budgetwise application.
package error

import "errors"

// Reminder domain errors.
var (
	// ErrReminderQueueFailed is returned when a reminder fails to be queued.
	ErrReminderQueueFailed = errors.New("failed to queue reminder")

	// ErrReminderSendFailed is returned when a reminder email fails to be sent.
	ErrReminderSendFailed = errors.New("failed to send reminder")

	// ErrReminderJobNotFound is returned when a reminder job is not found.
	ErrReminderJobNotFound = errors.New("reminder job not found")

	// ErrPermanentReminderFailure is returned when a reminder fails with a permanent error.
	ErrPermanentReminderFailure = errors.New("permanent reminder failure")
)
