package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/budget"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// BudgetController handles monthly budget endpoints.
type BudgetController struct {
	listUseCase *budget.ListBudgetsUseCase
	setUseCase  *budget.SetBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(listUseCase *budget.ListBudgetsUseCase, setUseCase *budget.SetBudgetUseCase) *BudgetController {
	return &BudgetController{
		listUseCase: listUseCase,
		setUseCase:  setUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	var query dto.MonthQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidBudgetMonth), err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{Month: query.Month})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Period, output.Budgets))
}

// Set handles POST /budgets requests. A non-positive amount removes the budget.
func (c *BudgetController) Set(ctx *gin.Context) {
	var req dto.SetBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeMissingBudgetFields), err)
		return
	}

	output, err := c.setUseCase.Execute(ctx.Request.Context(), budget.SetBudgetInput{
		CategoryID: uuid.MustParse(req.CategoryID),
		Month:      req.Month,
		Amount:     req.Amount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	resp := dto.SetBudgetResponse{Success: true, Removed: output.Removed}
	if output.Budget != nil {
		b := dto.ToBudgetResponse(output.Budget)
		resp.Budget = &b
	}
	ctx.JSON(http.StatusOK, resp)
}
