package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Upsert creates or replaces the budget of (category, period).
	Upsert(ctx context.Context, budget *entity.Budget) error

	// DeleteByCategoryAndPeriod removes the budget of (category, period) if present.
	DeleteByCategoryAndPeriod(ctx context.Context, categoryID uuid.UUID, period entity.Period) error

	// FindByPeriod retrieves the budgets of one month.
	FindByPeriod(ctx context.Context, period entity.Period) ([]*entity.Budget, error)
}
