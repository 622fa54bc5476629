package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budgetwise/backend/internal/application/usecase/analytics"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/entrypoint/dto"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// AnalyticsController handles spending summary endpoints.
type AnalyticsController struct {
	summaryUseCase *analytics.GetSummaryUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(summaryUseCase *analytics.GetSummaryUseCase) *AnalyticsController {
	return &AnalyticsController{summaryUseCase: summaryUseCase}
}

// Summary handles GET /analytics/summary requests.
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := analytics.GetSummaryInput{
		UserID: userID,
	}

	if daysStr := ctx.Query("days"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil {
			input.PeriodDays = days
		}
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute spending summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}
