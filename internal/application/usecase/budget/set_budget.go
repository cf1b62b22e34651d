// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// SetBudgetInput represents the input for setting a monthly budget.
type SetBudgetInput struct {
	CategoryID uuid.UUID
	Month      string
	Amount     decimal.Decimal
}

// SetBudgetOutput represents the output of setting a budget. Budget is nil
// when the amount cleared the limit.
type SetBudgetOutput struct {
	Budget  *entity.Budget
	Removed bool
}

// SetBudgetUseCase creates, replaces or clears the budget of a category for one month.
type SetBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	metrics      adapter.MetricsRecorder
}

// NewSetBudgetUseCase creates a new SetBudgetUseCase instance.
func NewSetBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository, metrics adapter.MetricsRecorder) *SetBudgetUseCase {
	return &SetBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
	}
}

// Execute upserts the budget, or deletes it when the amount is not positive.
func (uc *SetBudgetUseCase) Execute(ctx context.Context, input SetBudgetInput) (*SetBudgetOutput, error) {
	// Validate required fields
	if input.CategoryID == uuid.Nil || input.Month == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"category_id and month are required",
			domainerror.ErrInvalidBudgetMonth,
		)
	}

	period, err := entity.ParsePeriod(input.Month)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetMonth,
			"month must be formatted as YYYY-MM",
			domainerror.ErrInvalidBudgetMonth,
		)
	}

	// Validate category exists
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetCategoryNotFound,
				"category not found",
				domainerror.ErrBudgetCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	// Zero or negative clears the limit
	if !input.Amount.IsPositive() {
		if err := uc.budgetRepo.DeleteByCategoryAndPeriod(ctx, category.ID, period); err != nil {
			return nil, fmt.Errorf("failed to delete budget: %w", err)
		}
		uc.count("delete")
		return &SetBudgetOutput{Removed: true}, nil
	}

	budget := entity.NewBudget(category.ID, period, input.Amount)
	if err := uc.budgetRepo.Upsert(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}
	uc.count("upsert")

	return &SetBudgetOutput{Budget: budget}, nil
}

func (uc *SetBudgetUseCase) count(action string) {
	if uc.metrics != nil {
		uc.metrics.CountLedgerWrite("budget", action)
	}
}
