package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// AnalyticsController serves the read-only reports computed from the ledger.
type AnalyticsController struct {
	summaryUseCase      *analytics.GetMonthSummaryUseCase
	breakdownUseCase    *analytics.GetCategoryBreakdownUseCase
	budgetStatusUseCase *analytics.GetBudgetStatusUseCase
	forecastUseCase     *analytics.GetForecastUseCase
	insightsUseCase     *analytics.GetInsightsUseCase
	goalProgressUseCase *analytics.GetGoalProgressUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	summaryUseCase *analytics.GetMonthSummaryUseCase,
	breakdownUseCase *analytics.GetCategoryBreakdownUseCase,
	budgetStatusUseCase *analytics.GetBudgetStatusUseCase,
	forecastUseCase *analytics.GetForecastUseCase,
	insightsUseCase *analytics.GetInsightsUseCase,
	goalProgressUseCase *analytics.GetGoalProgressUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		summaryUseCase:      summaryUseCase,
		breakdownUseCase:    breakdownUseCase,
		budgetStatusUseCase: budgetStatusUseCase,
		forecastUseCase:     forecastUseCase,
		insightsUseCase:     insightsUseCase,
		goalProgressUseCase: goalProgressUseCase,
	}
}

// Summary handles GET /summary requests.
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	var query dto.SummaryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidPeriod), err)
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), analytics.GetMonthSummaryInput{Month: query.Month})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthSummaryResponse(output.Summary))
}

// Categories handles GET /summary/categories requests.
func (c *AnalyticsController) Categories(ctx *gin.Context) {
	var query dto.SummaryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidPeriod), err)
		return
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), analytics.GetCategoryBreakdownInput{Month: query.Month})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output.Period, output.Total, output.Categories))
}

// BudgetStatus handles GET /budgets/status requests.
func (c *AnalyticsController) BudgetStatus(ctx *gin.Context) {
	var query dto.BudgetStatusQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidReferenceDate), err)
		return
	}

	output, err := c.budgetStatusUseCase.Execute(ctx.Request.Context(), analytics.GetBudgetStatusInput{
		Month: query.Month,
		AsOf:  query.Date(),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetStatusListResponse(output.Period, output.Progress, output.Rows))
}

// Forecast handles GET /forecast requests.
func (c *AnalyticsController) Forecast(ctx *gin.Context) {
	var query dto.AsOfQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidReferenceDate), err)
		return
	}

	output, err := c.forecastUseCase.Execute(ctx.Request.Context(), analytics.GetForecastInput{AsOf: query.Date()})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToForecastResponse(output.Forecast))
}

// Insights handles GET /insights requests.
func (c *AnalyticsController) Insights(ctx *gin.Context) {
	var query dto.AsOfQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidReferenceDate), err)
		return
	}

	output, err := c.insightsUseCase.Execute(ctx.Request.Context(), analytics.GetInsightsInput{AsOf: query.Date()})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightListResponse(output.AsOf, output.Insights))
}

// GoalProgress handles GET /goals/progress requests.
func (c *AnalyticsController) GoalProgress(ctx *gin.Context) {
	var query dto.GoalProgressQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidReferenceDate), err)
		return
	}

	output, err := c.goalProgressUseCase.Execute(ctx.Request.Context(), analytics.GetGoalProgressInput{
		AsOf:             query.Date(),
		IncludeCompleted: query.IncludeCompleted,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalProgressListResponse(output.AsOf, output.Goals))
}
