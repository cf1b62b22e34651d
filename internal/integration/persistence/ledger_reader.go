package persistence

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ledgerReader implements adapter.LedgerReader on the same tables as the repositories.
type ledgerReader struct {
	db       *gorm.DB
	settings adapter.SettingRepository
}

// NewLedgerReader creates the read-only view consumed by analytics.
func NewLedgerReader(db *gorm.DB) adapter.LedgerReader {
	return &ledgerReader{db: db, settings: NewSettingRepository(db)}
}

func (r *ledgerReader) ListTransactions(ctx context.Context, period *entity.Period) ([]*entity.Transaction, error) {
	return listTransactions(r.db.WithContext(ctx), period)
}

func (r *ledgerReader) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return findCategories(r.db.WithContext(ctx))
}

func (r *ledgerReader) ListBudgets(ctx context.Context, period entity.Period) ([]*entity.Budget, error) {
	return findBudgets(r.db.WithContext(ctx).Where("month = ?", period.String()))
}

func (r *ledgerReader) ListGoals(ctx context.Context, includeCompleted bool) ([]*entity.Goal, error) {
	return listGoals(r.db.WithContext(ctx), includeCompleted)
}

func (r *ledgerReader) GetSetting(ctx context.Context, key string) (*string, error) {
	value, ok, err := r.settings.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}

// WithinSnapshot runs fn inside one read transaction. Postgres needs
// REPEATABLE READ for its statements to share a snapshot; SQLite gets that
// from any transaction.
func (r *ledgerReader) WithinSnapshot(ctx context.Context, fn func(adapter.LedgerReader) error) error {
	var opts []*sql.TxOptions
	if r.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerReader{db: tx, settings: NewSettingRepository(tx)})
	}, opts...)
}
