package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/infra/demo"
)

// restoreMidRead starts a restore as soon as the first transaction list
// has been read, then gives it a chance to commit before reading on.
type restoreMidRead struct {
	adapter.LedgerReader
	once    *sync.Once
	restore func()
}

func (r restoreMidRead) ListTransactions(ctx context.Context, period *entity.Period) ([]*entity.Transaction, error) {
	txs, err := r.LedgerReader.ListTransactions(ctx, period)
	r.once.Do(r.restore)
	return txs, err
}

func (r restoreMidRead) WithinSnapshot(ctx context.Context, fn func(adapter.LedgerReader) error) error {
	return r.LedgerReader.WithinSnapshot(ctx, func(inner adapter.LedgerReader) error {
		return fn(restoreMidRead{LedgerReader: inner, once: r.once, restore: r.restore})
	})
}

func TestLedgerReader_ForecastIgnoresRestoreCommittedMidQuery(t *testing.T) {
	ctx := context.Background()
	until := time.Date(2024, 4, 18, 0, 0, 0, 0, time.UTC)
	clock := fixedClock(until)

	ledgerA := demo.Generate(demo.Options{Seed: 11, Months: 5, Until: until})
	ledgerB := demo.Generate(demo.Options{Seed: 29, Months: 5, Until: until})

	reference := openTestDB(t)
	require.NoError(t, NewBackupRepository(reference).Replace(ctx, ledgerA))
	want, err := analytics.NewGetForecastUseCase(NewLedgerReader(reference), clock, nil).Execute(ctx, analytics.GetForecastInput{})
	require.NoError(t, err)

	funded := 0
	for _, eta := range want.Forecast.GoalETAs {
		if eta.Balance.IsPositive() {
			funded++
		}
	}
	require.Positive(t, funded, "ledger A needs funded goals for the comparison to mean anything")

	db := openTestDB(t)
	require.NoError(t, NewBackupRepository(db).Replace(ctx, ledgerA))

	done := make(chan error, 1)
	reader := restoreMidRead{
		LedgerReader: NewLedgerReader(db),
		once:         &sync.Once{},
		restore: func() {
			go func() { done <- NewBackupRepository(db).Replace(ctx, ledgerB) }()
			select {
			case err := <-done:
				done <- err
			case <-time.After(300 * time.Millisecond):
			}
		},
	}

	got, err := analytics.NewGetForecastUseCase(reader, clock, nil).Execute(ctx, analytics.GetForecastInput{})
	require.NoError(t, err)
	require.NoError(t, <-done, "the restore must still succeed once the query is done")

	assert.Equal(t, want.Forecast.MonthEnd.CurrentSpend.String(), got.Forecast.MonthEnd.CurrentSpend.String())
	assert.Len(t, got.Forecast.BudgetRisks, len(want.Forecast.BudgetRisks))
	require.Len(t, got.Forecast.GoalETAs, len(want.Forecast.GoalETAs))
	for i := range want.Forecast.GoalETAs {
		assert.Equal(t, want.Forecast.GoalETAs[i].Goal.ID, got.Forecast.GoalETAs[i].Goal.ID)
		assert.Equal(t, want.Forecast.GoalETAs[i].Balance.String(), got.Forecast.GoalETAs[i].Balance.String())
	}

	goals, err := NewLedgerReader(db).ListGoals(ctx, true)
	require.NoError(t, err)
	var restored, expected []uuid.UUID
	for _, g := range goals {
		restored = append(restored, g.ID)
	}
	for _, g := range ledgerB.Goals {
		expected = append(expected, g.ID)
	}
	assert.ElementsMatch(t, expected, restored, "later queries see the restored ledger")
}

func TestLedgerReader_WithinSnapshotPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	sentinel := assert.AnError
	err := NewLedgerReader(db).WithinSnapshot(ctx, func(reader adapter.LedgerReader) error {
		_, err := reader.ListCategories(ctx)
		require.NoError(t, err)
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}
