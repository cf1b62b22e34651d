package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create stores a new goal.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// List retrieves goals ordered by priority then deadline.
	List(ctx context.Context, includeCompleted bool) ([]*entity.Goal, error)

	// Update updates an existing goal.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal. Transactions linked to it keep their goal id.
	Delete(ctx context.Context, id uuid.UUID) error
}
