package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// FundDescription is the description of the transfer recorded by FundGoal.
const FundDescription = "Saved towards goal"

// FundGoalInput represents the input for funding a goal.
type FundGoalInput struct {
	GoalID uuid.UUID
	Amount decimal.Decimal
	Date   *time.Time // Optional, defaults to today
}

// FundGoalOutput represents the output of funding a goal.
type FundGoalOutput struct {
	Transaction *entity.Transaction
}

// FundGoalUseCase moves money into a goal by recording a transfer in the
// first savings category.
type FundGoalUseCase struct {
	goalRepo        adapter.GoalRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
	metrics         adapter.MetricsRecorder
}

// NewFundGoalUseCase creates a new FundGoalUseCase instance.
func NewFundGoalUseCase(
	goalRepo adapter.GoalRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
	metrics adapter.MetricsRecorder,
) *FundGoalUseCase {
	return &FundGoalUseCase{
		goalRepo:        goalRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
		metrics:         metrics,
	}
}

// Execute records the transfer.
func (uc *FundGoalUseCase) Execute(ctx context.Context, input FundGoalInput) (*FundGoalOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidFundAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidFundAmount,
		)
	}

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

	// Transfers are booked against a savings category
	savings, err := uc.categoryRepo.FindByType(ctx, entity.CategoryTypeSavings)
	if err != nil {
		return nil, fmt.Errorf("failed to find savings category: %w", err)
	}
	if len(savings) == 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNoSavingsCategory,
			"no savings category found",
			domainerror.ErrNoSavingsCategory,
		)
	}

	date := uc.clock.Now()
	if input.Date != nil {
		date = *input.Date
	}

	transaction := entity.NewTransaction(date, input.Amount, entity.Transfer{GoalID: goal.ID}, savings[0].ID, FundDescription)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.CountLedgerWrite("goal", "fund")
	}

	return &FundGoalOutput{Transaction: transaction}, nil
}

// findGoal loads a goal, mapping a missing row to a coded goal error.
func findGoal(ctx context.Context, repo adapter.GoalRepository, id uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return goal, nil
}
