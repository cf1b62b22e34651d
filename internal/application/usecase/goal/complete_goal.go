package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CompleteGoalInput represents the input for completing a goal.
type CompleteGoalInput struct {
	GoalID uuid.UUID
}

// CompleteGoalOutput represents the output of completing a goal.
type CompleteGoalOutput struct {
	Goal *entity.Goal
}

// CompleteGoalUseCase marks a goal as completed, removing it from analytics.
type CompleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
	metrics  adapter.MetricsRecorder
}

// NewCompleteGoalUseCase creates a new CompleteGoalUseCase instance.
func NewCompleteGoalUseCase(goalRepo adapter.GoalRepository, metrics adapter.MetricsRecorder) *CompleteGoalUseCase {
	return &CompleteGoalUseCase{
		goalRepo: goalRepo,
		metrics:  metrics,
	}
}

// Execute performs the update.
func (uc *CompleteGoalUseCase) Execute(ctx context.Context, input CompleteGoalInput) (*CompleteGoalOutput, error) {
	goal, err := findGoal(ctx, uc.goalRepo, input.GoalID)
	if err != nil {
		return nil, err
	}
	if goal.IsCompleted {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalAlreadyCompleted,
			"goal is already completed",
			domainerror.ErrGoalAlreadyCompleted,
		)
	}

	goal.IsCompleted = true
	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.CountLedgerWrite("goal", "complete")
	}

	return &CompleteGoalOutput{Goal: goal}, nil
}
