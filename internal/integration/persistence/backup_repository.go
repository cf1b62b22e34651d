package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// restoreBatchSize bounds the rows per INSERT during a restore.
const restoreBatchSize = 200

// backupRepository implements the adapter.BackupRepository interface.
type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a new backup repository instance.
func NewBackupRepository(db *gorm.DB) adapter.BackupRepository {
	return &backupRepository{db: db}
}

// Dump reads every table inside one read transaction.
func (r *backupRepository) Dump(ctx context.Context) (*adapter.LedgerState, error) {
	state := &adapter.LedgerState{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if state.Settings, err = allSettings(tx); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		if state.Categories, err = findCategories(tx); err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		if state.Budgets, err = findBudgets(tx); err != nil {
			return fmt.Errorf("budgets: %w", err)
		}
		if state.Goals, err = listGoals(tx, true); err != nil {
			return fmt.Errorf("goals: %w", err)
		}
		if state.Transactions, err = listTransactions(tx, nil); err != nil {
			return fmt.Errorf("transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Replace wipes every table and inserts state in one database transaction.
func (r *backupRepository) Replace(ctx context.Context, state *adapter.LedgerState) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first
		for _, m := range []any{
			&model.TransactionModel{},
			&model.BudgetModel{},
			&model.GoalModel{},
			&model.CategoryModel{},
			&model.SettingModel{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("wipe %T: %w", m, err)
			}
		}

		settings := make([]model.SettingModel, len(state.Settings))
		for i, s := range state.Settings {
			settings[i] = model.SettingModel{Key: s.Key, Value: s.Value}
		}
		categories := make([]*model.CategoryModel, len(state.Categories))
		for i, c := range state.Categories {
			categories[i] = model.CategoryFromEntity(c)
		}
		goals := make([]*model.GoalModel, len(state.Goals))
		for i, g := range state.Goals {
			goals[i] = model.GoalFromEntity(g)
		}
		budgets := make([]*model.BudgetModel, len(state.Budgets))
		for i, b := range state.Budgets {
			budgets[i] = model.BudgetFromEntity(b)
		}
		transactions := make([]*model.TransactionModel, len(state.Transactions))
		for i, t := range state.Transactions {
			transactions[i] = model.TransactionFromEntity(t)
		}

		if err := insertAll(tx, settings); err != nil {
			return fmt.Errorf("restore settings: %w", err)
		}
		if err := insertAll(tx, categories); err != nil {
			return fmt.Errorf("restore categories: %w", err)
		}
		if err := insertAll(tx, goals); err != nil {
			return fmt.Errorf("restore goals: %w", err)
		}
		if err := insertAll(tx, budgets); err != nil {
			return fmt.Errorf("restore budgets: %w", err)
		}
		if err := insertAll(tx, transactions); err != nil {
			return fmt.Errorf("restore transactions: %w", err)
		}
		return nil
	})
}

func insertAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, restoreBatchSize).Error
}
