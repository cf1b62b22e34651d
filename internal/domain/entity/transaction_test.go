package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	goalID := uuid.New()

	t.Run("transfer needs a goal", func(t *testing.T) {
		_, err := KindFor(TransactionTypeTransfer, nil)
		assert.ErrorIs(t, err, ErrTransferWithoutGoal)

		nilID := uuid.Nil
		_, err = KindFor(TransactionTypeTransfer, &nilID)
		assert.ErrorIs(t, err, ErrTransferWithoutGoal)
	})

	t.Run("transfer keeps goal", func(t *testing.T) {
		kind, err := KindFor(TransactionTypeTransfer, &goalID)
		require.NoError(t, err)
		assert.Equal(t, Transfer{GoalID: goalID}, kind)
		assert.Equal(t, goalID, *kind.Goal())
	})

	t.Run("expense may link a goal", func(t *testing.T) {
		kind, err := KindFor(TransactionTypeExpense, &goalID)
		require.NoError(t, err)
		assert.Equal(t, TransactionTypeExpense, kind.Type())
		assert.Equal(t, &goalID, kind.Goal())
	})

	t.Run("income drops goal", func(t *testing.T) {
		kind, err := KindFor(TransactionTypeIncome, &goalID)
		require.NoError(t, err)
		assert.Nil(t, kind.Goal())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := KindFor("refund", nil)
		assert.ErrorIs(t, err, ErrUnknownTransactionType)
	})
}

func TestNewTransaction_TruncatesToDay(t *testing.T) {
	tx := NewTransaction(time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC), decimal.NewFromInt(12), Income{}, uuid.New(), "")

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.True(t, tx.IsIncome())
	assert.False(t, tx.IsExpense())
	assert.Nil(t, tx.GoalID())
}

func TestGoal_RanksBefore(t *testing.T) {
	soon := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	later := soon.AddDate(0, 6, 0)

	urgent := NewGoal("urgent", decimal.NewFromInt(100), &later, 1)
	dated := NewGoal("dated", decimal.NewFromInt(100), &soon, 2)
	undated := NewGoal("undated", decimal.NewFromInt(100), nil, 0)

	assert.Equal(t, DefaultGoalPriority, undated.Priority)
	assert.True(t, urgent.RanksBefore(dated))
	assert.True(t, dated.RanksBefore(undated))
	assert.False(t, undated.RanksBefore(dated))
}
