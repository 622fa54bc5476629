package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/usecase/recurring"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/entrypoint/dto"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// RecurringPaymentController handles recurring payment endpoints.
type RecurringPaymentController struct {
	listUseCase       *recurring.ListRecurringPaymentsUseCase
	createUseCase     *recurring.CreateRecurringPaymentUseCase
	updateUseCase     *recurring.UpdateRecurringPaymentUseCase
	deleteUseCase     *recurring.DeleteRecurringPaymentUseCase
	markAsPaidUseCase *recurring.MarkAsPaidUseCase
	rolloverUseCase   *recurring.MonthlyRolloverUseCase
}

// NewRecurringPaymentController creates a new recurring payment controller instance.
func NewRecurringPaymentController(
	listUseCase *recurring.ListRecurringPaymentsUseCase,
	createUseCase *recurring.CreateRecurringPaymentUseCase,
	updateUseCase *recurring.UpdateRecurringPaymentUseCase,
	deleteUseCase *recurring.DeleteRecurringPaymentUseCase,
	markAsPaidUseCase *recurring.MarkAsPaidUseCase,
	rolloverUseCase *recurring.MonthlyRolloverUseCase,
) *RecurringPaymentController {
	return &RecurringPaymentController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		markAsPaidUseCase: markAsPaidUseCase,
		rolloverUseCase:   rolloverUseCase,
	}
}

// List handles GET /recurring-payments requests. Listing refreshes every
// payment's status as of now before responding.
func (c *RecurringPaymentController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListRecurringPaymentsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringPaymentListResponse(output))
}

// Create handles POST /recurring-payments requests.
func (c *RecurringPaymentController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateRecurringPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := recurring.CreateRecurringPaymentInput{
		UserID:      userID,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Category:    entity.DetailedCategory(req.Category),
		Subcategory: req.Subcategory,
		Frequency:   entity.Frequency(req.Frequency),
		DueDay:      req.DueDay,
		Type:        entity.TransactionType(req.Type),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringPaymentResponse(output.Payment))
}

// Update handles PATCH /recurring-payments/:id requests.
func (c *RecurringPaymentController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring payment ID format",
		})
		return
	}

	var req dto.UpdateRecurringPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := recurring.UpdateRecurringPaymentInput{
		UserID:      userID,
		PaymentID:   paymentID,
		Description: req.Description,
		Subcategory: req.Subcategory,
		DueDay:      req.DueDay,
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.Category != nil {
		category := entity.DetailedCategory(*req.Category)
		input.Category = &category
	}
	if req.Frequency != nil {
		frequency := entity.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}
	if req.Type != nil {
		paymentType := entity.TransactionType(*req.Type)
		input.Type = &paymentType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringPaymentResponse(output.Payment))
}

// Delete handles DELETE /recurring-payments/:id requests. Ledger entries
// generated by the payment are kept.
func (c *RecurringPaymentController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring payment ID format",
		})
		return
	}

	input := recurring.DeleteRecurringPaymentInput{
		UserID:    userID,
		PaymentID: paymentID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Recurring payment deleted",
	})
}

// MarkAsPaid handles POST /recurring-payments/:id/pay requests.
func (c *RecurringPaymentController) MarkAsPaid(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring payment ID format",
		})
		return
	}

	// Body is optional; an empty or missing body means "paid today".
	var req dto.MarkAsPaidRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body",
			})
			return
		}
	}

	paymentDate := time.Now().UTC()
	if req.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidPaymentDate),
			})
			return
		}
	}

	input := recurring.MarkAsPaidInput{
		UserID:      userID,
		PaymentID:   paymentID,
		PaymentDate: paymentDate,
	}

	output, err := c.markAsPaidUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMarkAsPaidResponse(output))
}

// Rollover handles POST /recurring-payments/rollover requests.
func (c *RecurringPaymentController) Rollover(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := recurring.MonthlyRolloverInput{
		UserID: userID,
	}

	if err := c.rolloverUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Recurring payments rolled over",
	})
}

// handleRecurringError handles recurring payment errors and returns appropriate HTTP responses.
func (c *RecurringPaymentController) handleRecurringError(ctx *gin.Context, err error) {
	var rcpErr *domainerror.RecurringError
	if errors.As(err, &rcpErr) {
		statusCode := c.getStatusCodeForRecurringError(rcpErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: rcpErr.Message,
			Code:  string(rcpErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring payment error codes to HTTP status codes.
func (c *RecurringPaymentController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringPaymentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedPayment:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidDueDay,
		domainerror.ErrCodeInvalidPaymentAmount,
		domainerror.ErrCodeInvalidPaymentDate,
		domainerror.ErrCodeInvalidPaymentType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
