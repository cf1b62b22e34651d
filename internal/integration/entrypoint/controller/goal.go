package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/goal"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	listUseCase     *goal.ListGoalsUseCase
	createUseCase   *goal.CreateGoalUseCase
	fundUseCase     *goal.FundGoalUseCase
	completeUseCase *goal.CompleteGoalUseCase
	deleteUseCase   *goal.DeleteGoalUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	fundUseCase *goal.FundGoalUseCase,
	completeUseCase *goal.CompleteGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		fundUseCase:     fundUseCase,
		completeUseCase: completeUseCase,
		deleteUseCase:   deleteUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	var query dto.ListGoalsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidGoalFilter), err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		IncludeCompleted: query.IncludeCompleted,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeMissingGoalFields), err)
		return
	}

	input := goal.CreateGoalInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Priority:     req.Priority,
	}
	if req.Deadline != nil {
		d, _ := entity.ParseDate(*req.Deadline)
		input.Deadline = &d
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal, decimal.Zero))
}

// Fund handles POST /goals/:id/fund requests by recording a transfer into
// the goal.
func (c *GoalController) Fund(ctx *gin.Context) {
	goalID, ok := c.parseGoalID(ctx)
	if !ok {
		return
	}

	var req dto.FundGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidFundAmount), err)
		return
	}

	input := goal.FundGoalInput{GoalID: goalID, Amount: req.Amount}
	if req.Date != nil {
		d, _ := entity.ParseDate(*req.Date)
		input.Date = &d
	}

	output, err := c.fundUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(&transaction.TransactionOutput{
		Transaction: output.Transaction,
	}))
}

// Complete handles POST /goals/:id/complete requests.
func (c *GoalController) Complete(ctx *gin.Context) {
	goalID, ok := c.parseGoalID(ctx)
	if !ok {
		return
	}

	if _, err := c.completeUseCase.Execute(ctx.Request.Context(), goal.CompleteGoalInput{GoalID: goalID}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	goalID, ok := c.parseGoalID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{GoalID: goalID}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (c *GoalController) parseGoalID(ctx *gin.Context) (uuid.UUID, bool) {
	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return uuid.Nil, false
	}
	return goalID, true
}
