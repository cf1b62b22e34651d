// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	Deadline     *time.Time
	Priority     int // Optional, defaults to medium
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	metrics  adapter.MetricsRecorder
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, metrics adapter.MetricsRecorder) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		metrics:  metrics,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"name is required",
			domainerror.ErrMissingGoalName,
		)
	}

	// Validate target amount
	if !input.TargetAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}

	// Zero means "use the default"
	if input.Priority != 0 && !entity.IsValidGoalPriority(input.Priority) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalPriority,
			"priority must be 1 (high), 2 (medium) or 3 (low)",
			domainerror.ErrInvalidGoalPriority,
		)
	}

	goal := entity.NewGoal(name, input.TargetAmount, input.Deadline, input.Priority)
	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.CountLedgerWrite("goal", "create")
	}

	return &CreateGoalOutput{Goal: goal}, nil
}
