package persistence

import (
	"context"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SeedDefaultCategories creates the default categories when none exist and
// returns how many were created.
func SeedDefaultCategories(ctx context.Context, repo adapter.CategoryRepository) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil || count > 0 {
		return 0, err
	}

	defaults := entity.DefaultCategories()
	for _, c := range defaults {
		if err := repo.Create(ctx, c); err != nil {
			return 0, err
		}
	}
	return len(defaults), nil
}
