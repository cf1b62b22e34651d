package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	"github.com/finance-tracker/ledger/internal/domain/analytics/insight"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/infra/demo"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// analyticsView runs every period-scoped query over reader.
type analyticsView struct {
	summary  *analytics.GetMonthSummaryUseCase
	status   *analytics.GetBudgetStatusUseCase
	insights *analytics.GetInsightsUseCase
	forecast *analytics.GetForecastUseCase
}

func newAnalyticsView(reader adapter.LedgerReader, clock adapter.Clock) analyticsView {
	return analyticsView{
		summary:  analytics.NewGetMonthSummaryUseCase(reader, nil),
		status:   analytics.NewGetBudgetStatusUseCase(reader, clock, nil),
		insights: analytics.NewGetInsightsUseCase(reader, clock, nil, nil),
		forecast: analytics.NewGetForecastUseCase(reader, clock, nil),
	}
}

func TestBackupRepository_RoundTripPreservesAnalytics(t *testing.T) {
	ctx := context.Background()
	until := time.Date(2024, 4, 18, 0, 0, 0, 0, time.UTC)
	clock := fixedClock(until)

	source := openTestDB(t)
	state := demo.Generate(demo.Options{Seed: 11, Months: 5, Until: until})
	require.NoError(t, NewBackupRepository(source).Replace(ctx, state))

	dumped, err := NewBackupRepository(source).Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, dumped.Transactions, len(state.Transactions))
	assert.Len(t, dumped.Budgets, len(state.Budgets))
	assert.Len(t, dumped.Goals, len(state.Goals))

	target := openTestDB(t)
	require.NoError(t, NewBackupRepository(target).Replace(ctx, dumped))

	before := newAnalyticsView(NewLedgerReader(source), clock)
	after := newAnalyticsView(NewLedgerReader(target), clock)

	first := entity.PeriodOf(until).AddMonths(-4)
	for m := 0; m < 5; m++ {
		month := first.AddMonths(m).String()
		asOf := first.AddMonths(m).End().AddDate(0, 0, -1)
		if asOf.After(until) {
			asOf = until
		}

		wantSummary, err := before.summary.Execute(ctx, analytics.GetMonthSummaryInput{Month: month})
		require.NoError(t, err)
		gotSummary, err := after.summary.Execute(ctx, analytics.GetMonthSummaryInput{Month: month})
		require.NoError(t, err)
		assert.Equal(t, wantSummary.Summary.Balance.String(), gotSummary.Summary.Balance.String(), month)
		assert.Equal(t, wantSummary.Summary.TotalExpense.String(), gotSummary.Summary.TotalExpense.String(), month)

		wantStatus, err := before.status.Execute(ctx, analytics.GetBudgetStatusInput{Month: month, AsOf: &asOf})
		require.NoError(t, err)
		gotStatus, err := after.status.Execute(ctx, analytics.GetBudgetStatusInput{Month: month, AsOf: &asOf})
		require.NoError(t, err)
		require.Len(t, gotStatus.Rows, len(wantStatus.Rows), month)
		for i := range wantStatus.Rows {
			assert.Equal(t, wantStatus.Rows[i].Category.ID, gotStatus.Rows[i].Category.ID)
			assert.Equal(t, wantStatus.Rows[i].Spent.String(), gotStatus.Rows[i].Spent.String())
			assert.Equal(t, wantStatus.Rows[i].BudgetLimit.String(), gotStatus.Rows[i].BudgetLimit.String())
		}

		wantInsights, err := before.insights.Execute(ctx, analytics.GetInsightsInput{AsOf: &asOf})
		require.NoError(t, err)
		gotInsights, err := after.insights.Execute(ctx, analytics.GetInsightsInput{AsOf: &asOf})
		require.NoError(t, err)
		assert.Equal(t, insightKeys(wantInsights.Insights), insightKeys(gotInsights.Insights), month)
	}

	wantForecast, err := before.forecast.Execute(ctx, analytics.GetForecastInput{})
	require.NoError(t, err)
	gotForecast, err := after.forecast.Execute(ctx, analytics.GetForecastInput{})
	require.NoError(t, err)
	assert.Equal(t, wantForecast.Forecast.MonthEnd.ProjectedSpend.String(), gotForecast.Forecast.MonthEnd.ProjectedSpend.String())
}

func TestBackupRepository_ReplaceIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewBackupRepository(db)

	original := demo.Generate(demo.Options{Seed: 3, Months: 2, Until: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, repo.Replace(ctx, original))

	// A duplicate primary key fails half way through the inserts
	broken := demo.Generate(demo.Options{Seed: 4, Months: 2, Until: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)})
	broken.Transactions = append(broken.Transactions, broken.Transactions[0])
	require.Error(t, repo.Replace(ctx, broken))

	after, err := repo.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, after.Transactions, len(original.Transactions))
	assert.Equal(t, original.Categories[0].ID, findCategory(after, original.Categories[0].Name))
}

func insightKeys(insights []insight.Insight) []string {
	keys := make([]string, len(insights))
	for i, in := range insights {
		keys[i] = fmt.Sprintf("%s|%s|%d|%s|%s", in.Rule, in.Type, in.Priority, in.Title, in.Message)
	}
	return keys
}

func findCategory(state *adapter.LedgerState, name string) any {
	for _, c := range state.Categories {
		if c.Name == name {
			return c.ID
		}
	}
	return nil
}
