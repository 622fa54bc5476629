// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/config"
	"github.com/budgetwise/backend/internal/application/usecase/analytics"
	"github.com/budgetwise/backend/internal/application/usecase/auth"
	"github.com/budgetwise/backend/internal/application/usecase/recurring"
	"github.com/budgetwise/backend/internal/application/usecase/transaction"
	"github.com/budgetwise/backend/internal/infra/scheduler"
	"github.com/budgetwise/backend/internal/infra/server/router"
	"github.com/budgetwise/backend/internal/integration/adapters"
	"github.com/budgetwise/backend/internal/integration/email"
	"github.com/budgetwise/backend/internal/integration/email/templates"
	"github.com/budgetwise/backend/internal/integration/entrypoint/controller"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
	"github.com/budgetwise/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// ReminderWorker is nil when the reminder worker is disabled.
	ReminderWorker *email.Worker
	// Scheduler is nil when the background refresh is disabled.
	Scheduler *scheduler.Scheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	paymentRepo := persistence.NewRecurringPaymentRepository(db)
	reminderQueueRepo := persistence.NewReminderQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	clock := adapters.NewSystemClock()
	advisor := adapters.NewGeminiAdvisor(cfg.Gemini.APIKey)

	earlyPaymentPolicy := recurring.EarlyPaymentPolicy{
		MinPayDay: cfg.EarlyPayment.MinPayDay,
		MaxDueDay: cfg.EarlyPayment.MaxDueDay,
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create recurring payment use cases
	listPaymentsUseCase := recurring.NewListRecurringPaymentsUseCase(paymentRepo, userRepo, reminderQueueRepo, clock)
	createPaymentUseCase := recurring.NewCreateRecurringPaymentUseCase(paymentRepo, clock)
	updatePaymentUseCase := recurring.NewUpdateRecurringPaymentUseCase(paymentRepo, clock)
	deletePaymentUseCase := recurring.NewDeleteRecurringPaymentUseCase(paymentRepo)
	markAsPaidUseCase := recurring.NewMarkAsPaidUseCase(paymentRepo, transactionRepo, clock, earlyPaymentPolicy)
	rolloverUseCase := recurring.NewMonthlyRolloverUseCase(paymentRepo, clock)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	suggestCategoryUseCase := transaction.NewSuggestCategoryUseCase(advisor)

	// Create analytics use cases
	summaryUseCase := analytics.NewGetSummaryUseCase(transactionRepo, clock)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	recurringPaymentController := controller.NewRecurringPaymentController(
		listPaymentsUseCase,
		createPaymentUseCase,
		updatePaymentUseCase,
		deletePaymentUseCase,
		markAsPaidUseCase,
		rolloverUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		suggestCategoryUseCase,
	)

	analyticsController := controller.NewAnalyticsController(summaryUseCase)

	// Create middleware
	redisClient, err := newRedisClient(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		recurringPaymentController,
		transactionController,
		analyticsController,
		loginRateLimiter,
		authMiddleware,
	)

	injector := &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}

	// Create reminder worker
	if cfg.Reminders.WorkerEnabled && cfg.Reminders.ResendAPIKey != "" {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, err
		}
		sender := email.NewResendClient(cfg.Reminders.ResendAPIKey, cfg.Reminders.FromName, cfg.Reminders.FromEmail)
		injector.ReminderWorker = email.NewWorker(reminderQueueRepo, paymentRepo, sender, renderer, email.WorkerConfig{
			AppBaseURL:   cfg.Reminders.AppBaseURL,
			PollInterval: cfg.Reminders.PollInterval,
			BatchSize:    cfg.Reminders.BatchSize,
		})
	} else {
		slog.Info("Reminder worker disabled")
	}

	// Create background status refresh scheduler
	if cfg.Scheduler.Enabled {
		injector.Scheduler = scheduler.NewScheduler(userRepo, listPaymentsUseCase, cfg.Scheduler.Interval)
	} else {
		slog.Info("Status refresh scheduler disabled")
	}

	return injector, nil
}

// newRedisClient builds the Redis client used by the login rate limiter.
func newRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return redis.NewClient(opts), nil
}
