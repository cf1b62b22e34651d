package goal

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	IncludeCompleted bool
}

// GoalOutput is a goal with its balance derived from linked transactions.
type GoalOutput struct {
	Goal    *entity.Goal
	Balance decimal.Decimal
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*GoalOutput
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, transactionRepo adapter.TransactionRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the goal listing in rank order.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.List(ctx, input.IncludeCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	txs, err := uc.transactionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	balances := analytics.GoalBalances(txs)

	output := &ListGoalsOutput{Goals: make([]*GoalOutput, 0, len(goals))}
	for _, g := range goals {
		output.Goals = append(output.Goals, &GoalOutput{Goal: g, Balance: balances[g.ID]})
	}
	return output, nil
}
