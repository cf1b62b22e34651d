// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create stores a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// List returns transactions newest first, restricted to period when it is not nil.
	List(ctx context.Context, period *entity.Period) ([]*entity.Transaction, error)

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
