package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create stores a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAll retrieves every category ordered by type and name.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindByType retrieves the categories of one type ordered by name.
	FindByType(ctx context.Context, categoryType entity.CategoryType) ([]*entity.Category, error)

	// ExistsByName checks whether a category name is taken, ignoring excludeID.
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category together with its budgets. Transactions
	// keep pointing at the removed id.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of categories.
	Count(ctx context.Context) (int64, error)
}
