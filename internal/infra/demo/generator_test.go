package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

func TestGenerate(t *testing.T) {
	until := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	state := Generate(Options{Seed: 7, Months: 4, Until: until})

	require.NotEmpty(t, state.Transactions)
	require.NotEmpty(t, state.Goals)
	assert.Len(t, state.Categories, len(entity.DefaultCategories()))

	first := entity.Period{Year: 2024, Month: time.January}
	categories := map[string]bool{}
	for _, c := range state.Categories {
		categories[c.ID.String()] = true
	}
	for _, tx := range state.Transactions {
		assert.False(t, tx.Date.After(until), "transaction after until: %s", tx.Date)
		assert.False(t, tx.Date.Before(first.Start()), "transaction before window: %s", tx.Date)
		assert.True(t, tx.Amount.IsPositive())
		assert.True(t, categories[tx.CategoryID.String()])
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	until := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	a := Generate(Options{Seed: 42, Months: 3, Until: until})
	b := Generate(Options{Seed: 42, Months: 3, Until: until})

	require.Len(t, b.Transactions, len(a.Transactions))
	for i := range a.Transactions {
		assert.True(t, a.Transactions[i].Amount.Equal(b.Transactions[i].Amount))
		assert.Equal(t, a.Transactions[i].Date, b.Transactions[i].Date)
	}
}
