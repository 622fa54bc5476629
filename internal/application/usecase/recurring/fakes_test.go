// Package recurring contains recurring payment-related use cases.
package recurring

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakePaymentRepo is an in-memory RecurringPaymentRepository with switches to
// simulate store failures.
type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.RecurringPayment

	failBatch        bool
	failStatusFor    map[uuid.UUID]bool
	batchCalls       int
	singleCalls      int
	resetCalls       int
	lastResetMonthID int
}

func newFakePaymentRepo(payments ...*entity.RecurringPayment) *fakePaymentRepo {
	repo := &fakePaymentRepo{
		payments:      make(map[uuid.UUID]*entity.RecurringPayment),
		failStatusFor: make(map[uuid.UUID]bool),
	}
	for _, p := range payments {
		repo.payments[p.ID] = p
	}
	return repo
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.RecurringPayment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringPayment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringPaymentNotFound,
			"recurring payment not found",
			domainerror.ErrRecurringPaymentNotFound,
		)
	}
	return p, nil
}

func (r *fakePaymentRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringPayment, error) {
	var result []*entity.RecurringPayment
	for _, p := range r.payments {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *entity.RecurringPayment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return domainerror.ErrRecurringPaymentNotFound
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) UpdateStatuses(_ context.Context, updates []adapter.StatusUpdate) error {
	r.batchCalls++
	if r.failBatch {
		return errors.New("batch write unavailable")
	}
	for _, u := range updates {
		if p, ok := r.payments[u.PaymentID]; ok {
			p.Status = u.Status
		}
	}
	return nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, update adapter.StatusUpdate) error {
	r.singleCalls++
	if r.failStatusFor[update.PaymentID] {
		return errors.New("record write unavailable")
	}
	if p, ok := r.payments[update.PaymentID]; ok {
		p.Status = update.Status
	}
	return nil
}

func (r *fakePaymentRepo) ResetForMonth(_ context.Context, userID uuid.UUID, monthID int) error {
	r.resetCalls++
	r.lastResetMonthID = monthID
	for _, p := range r.payments {
		if p.UserID != userID {
			continue
		}
		p.Status = entity.PaymentStatusPending
		m := monthID
		p.LastPaidMonth = &m
		p.PaidEarly = false
		p.EarlyPaymentDate = nil
	}
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

// fakeTransactionRepo records created transactions and can be told to fail.
type fakeTransactionRepo struct {
	created    []*entity.Transaction
	failCreate bool
}

func (r *fakeTransactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	if r.failCreate {
		return errors.New("ledger unavailable")
	}
	r.created = append(r.created, transaction)
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, txn := range r.created {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByFilter(_ context.Context, _ adapter.TransactionFilter) ([]*entity.Transaction, error) {
	return r.created, nil
}

func (r *fakeTransactionRepo) FindByRecurringID(_ context.Context, recurringID uuid.UUID) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, txn := range r.created {
		if txn.RecurringID != nil && *txn.RecurringID == recurringID {
			result = append(result, txn)
		}
	}
	return result, nil
}

func (r *fakeTransactionRepo) GetTotals(_ context.Context, _ adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return &entity.TransactionTotals{}, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, _ *entity.Transaction) error { return nil }

func (r *fakeTransactionRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

// fakeUserRepo serves a single user.
type fakeUserRepo struct {
	user *entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.user = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, domainerror.ErrUserNotFound
	}
	return r.user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.user == nil || r.user.Email != email {
		return nil, domainerror.ErrUserNotFound
	}
	return r.user, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	if r.user == nil {
		return nil, nil
	}
	return []*entity.User{r.user}, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.user != nil && r.user.Email == email, nil
}

// fakeReminderQueue records queued jobs.
type fakeReminderQueue struct {
	jobs []*entity.ReminderJob
}

func (q *fakeReminderQueue) Create(_ context.Context, job *entity.ReminderJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeReminderQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.ReminderJob, error) {
	if len(q.jobs) > limit {
		return q.jobs[:limit], nil
	}
	return q.jobs, nil
}

func (q *fakeReminderQueue) Update(_ context.Context, _ *entity.ReminderJob) error { return nil }

func (q *fakeReminderQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.ReminderJob, error) {
	for _, job := range q.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, domainerror.ErrReminderJobNotFound
}

func (q *fakeReminderQueue) HasPendingForUser(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, job := range q.jobs {
		if job.UserID == userID && job.Status == entity.ReminderStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (q *fakeReminderQueue) DeleteOldSentJobs(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

func monthlyPayment(userID uuid.UUID, dueDay int, amount string) *entity.RecurringPayment {
	return entity.NewRecurringPayment(
		userID,
		"Internet",
		decimal.RequireFromString(amount),
		entity.CategoryUtilities,
		"",
		entity.FrequencyMonthly,
		dueDay,
		entity.TransactionTypeExpense,
	)
}
