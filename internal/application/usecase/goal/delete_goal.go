package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	GoalID uuid.UUID
}

// DeleteGoalUseCase handles goal deletion logic. Transactions that pointed
// at the goal are kept; analytics ignores their dangling reference.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
	metrics  adapter.MetricsRecorder
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository, metrics adapter.MetricsRecorder) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		goalRepo: goalRepo,
		metrics:  metrics,
	}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) error {
	if _, err := findGoal(ctx, uc.goalRepo, input.GoalID); err != nil {
		return err
	}

	if err := uc.goalRepo.Delete(ctx, input.GoalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.CountLedgerWrite("goal", "delete")
	}
	return nil
}
