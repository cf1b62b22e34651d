package adapter

import (
	"context"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LedgerReader is the read-only view of the ledger consumed by analytics.
type LedgerReader interface {
	// ListTransactions returns every transaction, or only those in period when it is not nil.
	ListTransactions(ctx context.Context, period *entity.Period) ([]*entity.Transaction, error)

	// ListCategories returns every category, hidden ones included.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// ListBudgets returns the budgets of period.
	ListBudgets(ctx context.Context, period entity.Period) ([]*entity.Budget, error)

	// ListGoals returns active goals, and completed ones when includeCompleted is set.
	ListGoals(ctx context.Context, includeCompleted bool) ([]*entity.Goal, error)

	// GetSetting returns the value of key, or nil when it is unset.
	GetSetting(ctx context.Context, key string) (*string, error)

	// WithinSnapshot runs fn with a reader whose reads all observe the
	// ledger as of one point in time. Writes committed while fn runs are
	// not visible to it.
	WithinSnapshot(ctx context.Context, fn func(reader LedgerReader) error) error
}
