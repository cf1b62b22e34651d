package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainanalytics "github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetGoalProgressInput represents the input for goal progress.
type GetGoalProgressInput struct {
	AsOf             *time.Time
	IncludeCompleted bool
}

// GetGoalProgressOutput represents the output of goal progress.
type GetGoalProgressOutput struct {
	AsOf  time.Time
	Goals []domainanalytics.GoalProgress
}

// GetGoalProgressUseCase derives goal balances and deadline flags.
type GetGoalProgressUseCase struct {
	reader  adapter.LedgerReader
	clock   adapter.Clock
	metrics adapter.MetricsRecorder
}

// NewGetGoalProgressUseCase creates a new GetGoalProgressUseCase instance.
func NewGetGoalProgressUseCase(reader adapter.LedgerReader, clock adapter.Clock, metrics adapter.MetricsRecorder) *GetGoalProgressUseCase {
	return &GetGoalProgressUseCase{
		reader:  reader,
		clock:   clock,
		metrics: metrics,
	}
}

// Execute evaluates each goal as of the reference date.
func (uc *GetGoalProgressUseCase) Execute(ctx context.Context, input GetGoalProgressInput) (output *GetGoalProgressOutput, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "goal_progress", start, err) }()

	ref := referenceDate(uc.clock, input.AsOf)

	var (
		goals []*entity.Goal
		txs   []*entity.Transaction
	)
	err = uc.reader.WithinSnapshot(ctx, func(reader adapter.LedgerReader) error {
		var err error
		if goals, err = reader.ListGoals(ctx, input.IncludeCompleted); err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}
		if txs, err = reader.ListTransactions(ctx, nil); err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &GetGoalProgressOutput{
		AsOf:  ref,
		Goals: domainanalytics.EvaluateGoals(goals, domainanalytics.GoalBalances(txs), ref),
	}, nil
}
