// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budgetwise/backend/internal/integration/entrypoint/controller"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                     *gin.Engine
	healthController           *controller.HealthController
	authController             *controller.AuthController
	recurringPaymentController *controller.RecurringPaymentController
	transactionController      *controller.TransactionController
	analyticsController        *controller.AnalyticsController
	loginRateLimiter           *middleware.RateLimiter
	authMiddleware             *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	recurringPaymentController *controller.RecurringPaymentController,
	transactionController *controller.TransactionController,
	analyticsController *controller.AnalyticsController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:           healthController,
		authController:             authController,
		recurringPaymentController: recurringPaymentController,
		transactionController:      transactionController,
		analyticsController:        analyticsController,
		loginRateLimiter:           loginRateLimiter,
		authMiddleware:             authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Recurring payment routes (require authentication)
		if r.recurringPaymentController != nil && r.authMiddleware != nil {
			recurringPayments := v1.Group("/recurring-payments")
			recurringPayments.Use(r.authMiddleware.Authenticate())
			{
				recurringPayments.GET("", r.recurringPaymentController.List)
				recurringPayments.POST("", r.recurringPaymentController.Create)
				recurringPayments.PATCH("/:id", r.recurringPaymentController.Update)
				recurringPayments.DELETE("/:id", r.recurringPaymentController.Delete)
				recurringPayments.POST("/:id/pay", r.recurringPaymentController.MarkAsPaid)
				recurringPayments.POST("/rollover", r.recurringPaymentController.Rollover)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
				transactions.POST("/suggest-category", r.transactionController.SuggestCategory)
			}
		}

		// Analytics routes (require authentication)
		if r.analyticsController != nil && r.authMiddleware != nil {
			analytics := v1.Group("/analytics")
			analytics.Use(r.authMiddleware.Authenticate())
			{
				analytics.GET("/summary", r.analyticsController.Summary)
			}
		}
	}
}
