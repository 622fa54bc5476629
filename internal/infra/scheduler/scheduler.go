// Package scheduler runs the periodic recurring payment status refresh.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/application/usecase/recurring"
)

// Scheduler refreshes recurring payment statuses for every user on an
// interval and at local midnight, when monthly and weekly cycles turn over.
// The refresh is best-effort: listing recomputes statuses on its own, so a
// missed run only delays reminder enqueueing.
type Scheduler struct {
	userRepo    adapter.UserRepository
	listUseCase *recurring.ListRecurringPaymentsUseCase
	interval    time.Duration
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(
	userRepo adapter.UserRepository,
	listUseCase *recurring.ListRecurringPaymentsUseCase,
	interval time.Duration,
) *Scheduler {
	return &Scheduler{
		userRepo:    userRepo,
		listUseCase: listUseCase,
		interval:    interval,
	}
}

// Start runs the scheduler loop until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Status refresh scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	midnight := time.NewTimer(untilNextMidnight(time.Now()))
	defer midnight.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Status refresh scheduler stopped")
			return
		case <-ticker.C:
			s.refreshAllUsers(ctx)
		case <-midnight.C:
			s.refreshAllUsers(ctx)
			midnight.Reset(untilNextMidnight(time.Now()))
		}
	}
}

// RefreshNow triggers a single refresh pass outside the timer loop.
func (s *Scheduler) RefreshNow(ctx context.Context) {
	s.refreshAllUsers(ctx)
}

func (s *Scheduler) refreshAllUsers(ctx context.Context) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Scheduled refresh failed to list users", "error", err)
		return
	}

	refreshed := 0
	for _, user := range users {
		if ctx.Err() != nil {
			return
		}

		_, err := s.listUseCase.Execute(ctx, recurring.ListRecurringPaymentsInput{
			UserID: user.ID,
		})
		if err != nil {
			slog.Error("Scheduled refresh failed for user", "userID", user.ID, "error", err)
			continue
		}
		refreshed++
	}

	slog.Info("Scheduled status refresh completed", "users", refreshed)
}

// untilNextMidnight returns the duration until the next local midnight.
func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
