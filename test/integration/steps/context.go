// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/usecase/analytics"
	"github.com/budgetwise/backend/internal/application/usecase/auth"
	"github.com/budgetwise/backend/internal/application/usecase/recurring"
	"github.com/budgetwise/backend/internal/application/usecase/transaction"
	"github.com/budgetwise/backend/internal/infra/server/router"
	"github.com/budgetwise/backend/internal/integration/adapters"
	"github.com/budgetwise/backend/internal/integration/entrypoint/controller"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
	"github.com/budgetwise/backend/internal/integration/persistence"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
	"github.com/budgetwise/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testContext holds per-scenario state. The server, database and clock are
// process-wide singletons; scenarios get a clean database and a reset clock.
type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	db           *mock.Db
	clock        *mock.Clock
	accessToken  string
	refreshToken string

	currentUserID     uuid.UUID
	lastPaymentID     uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit sync.Once
	testServer *httptest.Server
	testDB     *mock.Db
	testClock  *mock.Clock
)

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.startServer()
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Step(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Step(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Step(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Clock steps
	ctx.Step(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// Recurring payment setup steps
	ctx.Step(`^a "([^"]*)" recurring "([^"]*)" "([^"]*)" of "([^"]*)" due on day (\d+) exists$`, test.aRecurringPaymentExists)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Step(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

// before resets per-scenario state.
func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.lastPaymentID = uuid.Nil
	t.lastTransactionID = uuid.Nil
	t.response = nil

	t.db = testDB
	t.clock = testClock
	t.uri = testServer.URL

	t.clock.Reset()
	if t.db != nil {
		_ = t.db.ClearDB()
	}
}

// startServer wires the application against the in-memory database, the
// controllable clock and the miniredis rate limiter, and serves it once for
// the whole suite.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb("budgetwise", map[string]any{
			"users":              &model.UserModel{},
			"refresh_tokens":     &model.RefreshTokenModel{},
			"transactions":       &model.TransactionModel{},
			"recurring_payments": &model.RecurringPaymentModel{},
		})
		testClock = mock.NewClock()

		// Create repositories
		userRepo := persistence.NewUserRepository(testDB.DbConn)
		tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
		transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
		paymentRepo := persistence.NewRecurringPaymentRepository(testDB.DbConn)

		// Create adapters/services
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
		advisor := adapters.NewGeminiAdvisor("") // unavailable in tests

		// Create auth use cases
		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
		refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
		logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

		// Create recurring payment use cases; reminders are disabled in the
		// suite (nil queue), the worker has its own tests.
		listPaymentsUseCase := recurring.NewListRecurringPaymentsUseCase(paymentRepo, userRepo, nil, testClock)
		createPaymentUseCase := recurring.NewCreateRecurringPaymentUseCase(paymentRepo, testClock)
		updatePaymentUseCase := recurring.NewUpdateRecurringPaymentUseCase(paymentRepo, testClock)
		deletePaymentUseCase := recurring.NewDeleteRecurringPaymentUseCase(paymentRepo)
		markAsPaidUseCase := recurring.NewMarkAsPaidUseCase(paymentRepo, transactionRepo, testClock, recurring.DefaultEarlyPaymentPolicy())
		rolloverUseCase := recurring.NewMonthlyRolloverUseCase(paymentRepo, testClock)

		// Create transaction use cases
		listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
		createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
		updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo)
		deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
		suggestCategoryUseCase := transaction.NewSuggestCategoryUseCase(advisor)

		// Create analytics use cases
		summaryUseCase := analytics.NewGetSummaryUseCase(transactionRepo, testClock)

		// Create controllers
		healthController := controller.NewHealthController(func() bool {
			return testDB != nil && testDB.DbConn != nil
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

		// Create middleware; generous limit so scenarios never trip it
		loginRateLimiter := middleware.NewRateLimiterWithConfig(mock.NewRedis(), 1000, time.Minute)
		authMiddleware := middleware.NewAuthMiddleware(tokenService)

		r := router.NewRouter(
			healthController,
			authController,
			recurringPaymentController,
			transactionController,
			analyticsController,
			loginRateLimiter,
			authMiddleware,
		)
		engine := r.Setup("test")

		testServer = httptest.NewServer(engine)
	})
}
