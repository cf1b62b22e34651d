package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

func TestProjectEndOfMonth_NoHistory(t *testing.T) {
	cat := uuid.New()
	txs := []*entity.Transaction{
		income("2024-04-01", "1500", cat),
		expense("2024-04-03", "400", cat),
	}

	tests := []struct {
		ref  string
		want Confidence
	}{
		{"2024-04-05", ConfidenceLow},
		{"2024-04-10", ConfidenceLow},
		{"2024-04-11", ConfidenceMedium},
		{"2024-04-20", ConfidenceMedium},
		{"2024-04-21", ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			me := ProjectEndOfMonth(day(tt.ref), txs)
			assert.True(t, me.DailyVelocity.IsZero())
			assertDecimal(t, "400", me.ProjectedSpend)
			assertDecimal(t, "1100", me.ProjectedBalance)
			assert.Equal(t, tt.want, me.Confidence)
		})
	}
}

func TestDailyVelocity(t *testing.T) {
	cat := uuid.New()
	txs := []*entity.Transaction{
		expense("2023-12-15", "9000", cat), // outside the window
		expense("2024-01-10", "100", cat),
		expense("2024-01-20", "200", cat),
		expense("2024-02-05", "600", cat),
		income("2024-03-01", "5000", cat),
		expense("2024-04-02", "50", cat),
	}

	// January 300 and February 600 qualify, March had no expenses.
	assertDecimal(t, "15", DailyVelocity(period("2024-04"), txs))

	me := ProjectEndOfMonth(day("2024-04-10"), txs)
	assert.Equal(t, 20, me.DaysRemaining)
	assertDecimal(t, "50", me.CurrentSpend)
	assertDecimal(t, "350", me.ProjectedSpend)
	assertDecimal(t, "-350", me.ProjectedBalance)
}

func TestProjectEndOfMonth_NeverBelowCurrentSpend(t *testing.T) {
	cat := uuid.New()
	txs := []*entity.Transaction{
		expense("2024-05-03", "310", cat),
		expense("2024-06-03", "120", cat),
		expense("2024-07-03", "75", cat),
		expense("2024-08-02", "40", cat),
	}

	for d := day("2024-08-01"); d.Month() == 8; d = d.AddDate(0, 0, 1) {
		me := ProjectEndOfMonth(d, txs)
		assert.True(t, me.ProjectedSpend.GreaterThanOrEqual(me.CurrentSpend), d.Format(entity.DateLayout))
	}
}

func TestMonthlySurplus(t *testing.T) {
	cat := uuid.New()
	goal := uuid.New()
	txs := []*entity.Transaction{
		income("2024-01-01", "1000", cat),
		expense("2024-01-05", "400", cat),
		income("2024-03-01", "1000", cat),
		expense("2024-03-05", "600", cat),
		transfer("2024-03-06", "300", cat, goal),
		income("2024-04-01", "99999", cat),
	}

	// January +600, March +400; February had no activity.
	assertDecimal(t, "500", MonthlySurplus(period("2024-04"), txs))
	assert.True(t, MonthlySurplus(period("2020-01"), txs).IsZero())
}

func TestGoalETAs(t *testing.T) {
	ref := day("2024-04-10")
	house := entity.NewGoal("House", dec("1300"), nil, 1)
	phone := entity.NewGoal("Phone", dec("200"), nil, 2)
	done := entity.NewGoal("Done", dec("100"), nil, 3)
	archived := entity.NewGoal("Archived", dec("100"), nil, 3)
	archived.IsCompleted = true

	balances := map[uuid.UUID]decimal.Decimal{
		house.ID: dec("100"),
		done.ID:  dec("150"),
	}
	goals := []*entity.Goal{house, phone, done, archived}

	t.Run("positive surplus", func(t *testing.T) {
		etas := GoalETAs(goals, balances, dec("500"), ref)
		require.Len(t, etas, 3)

		assert.Equal(t, 3, *etas[0].MonthsNeeded)
		assert.Equal(t, day("2024-07-10"), *etas[0].ETA)
		assert.Equal(t, FeasibilityGood, etas[0].Feasibility)

		assert.Equal(t, 1, *etas[1].MonthsNeeded)
		assert.Equal(t, FeasibilityExcellent, etas[1].Feasibility)

		assert.Equal(t, 0, *etas[2].MonthsNeeded)
		assert.Equal(t, day("2024-04-10"), *etas[2].ETA)
		assert.True(t, etas[2].Remaining.IsZero())
	})

	t.Run("no surplus", func(t *testing.T) {
		etas := GoalETAs(goals, balances, dec("-20"), ref)
		require.Len(t, etas, 3)
		assert.Nil(t, etas[0].ETA)
		assert.Nil(t, etas[0].MonthsNeeded)
		assert.Equal(t, FeasibilityImpossible, etas[0].Feasibility)
	})

	t.Run("bands use the unrounded ratio", func(t *testing.T) {
		assert.Equal(t, FeasibilityGood, feasibilityFor(dec("5.99")))
		assert.Equal(t, FeasibilityModerate, feasibilityFor(dec("6")))
		assert.Equal(t, FeasibilityModerate, feasibilityFor(dec("11.5")))
		assert.Equal(t, FeasibilityChallenging, feasibilityFor(dec("12")))
	})
}

func TestBudgetRisks(t *testing.T) {
	progress := ProgressOf(day("2024-04-15"))
	statuses := []BudgetStatus{
		{Category: category("Dining Out", entity.CategoryTypeExpense), BudgetLimit: dec("100"), Spent: dec("80")},
		{Category: category("Groceries", entity.CategoryTypeExpense), BudgetLimit: dec("100"), Spent: dec("60")},
		{Category: category("Transport", entity.CategoryTypeExpense), BudgetLimit: dec("100"), Spent: dec("50")},
		{Category: category("Health", entity.CategoryTypeExpense), Spent: dec("50")},
	}

	risks := BudgetRisks(statuses, progress)
	require.Len(t, risks, 2)

	assert.Equal(t, RiskHigh, risks[0].Risk)
	assertDecimal(t, "160", risks[0].ProjectedTotal)
	assertDecimal(t, "60", risks[0].Overage)

	assert.Equal(t, RiskMedium, risks[1].Risk)
	assert.Equal(t, "Groceries", risks[1].Category.Name)
}

func TestOutlookFrom(t *testing.T) {
	assert.Equal(t, DirectionPositive, OutlookFrom(dec("100")).Direction)
	assertDecimal(t, "300", OutlookFrom(dec("100")).Drift)
	assert.Equal(t, DirectionNegative, OutlookFrom(dec("-5")).Direction)
	assertDecimal(t, "-15", OutlookFrom(dec("-5")).Drift)
	assert.Equal(t, DirectionFlat, OutlookFrom(decimal.Zero).Direction)
}

func TestBuildForecast(t *testing.T) {
	groceries := category("Groceries", entity.CategoryTypeExpense)
	ref := day("2024-04-15")
	goal := entity.NewGoal("Trip", dec("1000"), nil, 1)
	snap := &Snapshot{
		Categories: []*entity.Category{groceries},
		Budgets:    []*entity.Budget{entity.NewBudget(groceries.ID, period("2024-04"), dec("100"))},
		Goals:      []*entity.Goal{goal},
		Transactions: []*entity.Transaction{
			income("2024-03-01", "700", groceries.ID),
			expense("2024-03-02", "300", groceries.ID),
			expense("2024-04-02", "90", groceries.ID),
		},
	}

	f, err := BuildForecast(snap, ref)
	require.NoError(t, err)

	assertDecimal(t, "10", f.MonthEnd.DailyVelocity)
	assertDecimal(t, "240", f.MonthEnd.ProjectedSpend)
	require.Len(t, f.BudgetRisks, 1)
	assert.Equal(t, RiskHigh, f.BudgetRisks[0].Risk)
	require.Len(t, f.GoalETAs, 1)
	assert.Equal(t, 3, *f.GoalETAs[0].MonthsNeeded)
	assertDecimal(t, "1200", f.Outlook.Drift)
}
