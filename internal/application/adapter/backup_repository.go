package adapter

import (
	"context"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LedgerState is the full content of a ledger, as exported and restored.
type LedgerState struct {
	Settings     []entity.Setting
	Categories   []*entity.Category
	Budgets      []*entity.Budget
	Goals        []*entity.Goal
	Transactions []*entity.Transaction
}

// BackupRepository reads and replaces the whole ledger.
type BackupRepository interface {
	// Dump reads every table in one consistent snapshot.
	Dump(ctx context.Context) (*LedgerState, error)

	// Replace wipes the ledger and inserts state, preserving IDs. Either every
	// row is written or none is.
	Replace(ctx context.Context, state *LedgerState) error
}
