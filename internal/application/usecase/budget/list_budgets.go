package budget

import (
	"context"
	"fmt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListBudgetsInput represents the input for listing the budgets of a month.
type ListBudgetsInput struct {
	Month string
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Period  entity.Period
	Budgets []*entity.Budget
}

// ListBudgetsUseCase lists the raw budget rows of a month.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{budgetRepo: budgetRepo}
}

// Execute lists the budgets.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	if input.Month == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"month is required",
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

	budgets, err := uc.budgetRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return &ListBudgetsOutput{Period: period, Budgets: budgets}, nil
}
