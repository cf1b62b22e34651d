package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/finance-tracker/ledger/internal/domain/analytics/insight"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// memoryLedger is an in-memory LedgerReader.
type memoryLedger struct {
	transactions []*entity.Transaction
	categories   []*entity.Category
	budgets      []*entity.Budget
	goals        []*entity.Goal
	settings     map[string]string
	err          error
}

func (m *memoryLedger) ListTransactions(_ context.Context, period *entity.Period) ([]*entity.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	if period == nil {
		return m.transactions, nil
	}
	var out []*entity.Transaction
	for _, tx := range m.transactions {
		if period.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memoryLedger) ListCategories(context.Context) ([]*entity.Category, error) {
	return m.categories, nil
}

func (m *memoryLedger) ListBudgets(_ context.Context, period entity.Period) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range m.budgets {
		if b.Period == period {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryLedger) ListGoals(_ context.Context, includeCompleted bool) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range m.goals {
		if includeCompleted || !g.IsCompleted {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memoryLedger) GetSetting(_ context.Context, key string) (*string, error) {
	v, ok := m.settings[key]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordedQuery struct {
	operation string
	failed    bool
}

type recordingMetrics struct {
	queries  []recordedQuery
	insights map[string]int
}

func (r *recordingMetrics) ObserveAnalytics(operation string, _ float64, err error) {
	r.queries = append(r.queries, recordedQuery{operation: operation, failed: err != nil})
}

func (r *recordingMetrics) CountInsights(rule string, n int) {
	if r.insights == nil {
		r.insights = make(map[string]int)
	}
	r.insights[rule] += n
}

func (r *recordingMetrics) CountLedgerWrite(string, string) {}

// AnalyticsUseCaseTestSuite exercises the use cases over an in-memory ledger.
type AnalyticsUseCaseTestSuite struct {
	suite.Suite
	ctx       context.Context
	ledger    *memoryLedger
	clock     fixedClock
	metrics   *recordingMetrics
	groceries *entity.Category
	salary    *entity.Category
	savings   *entity.Category
	trip      *entity.Goal
}

func TestAnalyticsUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsUseCaseTestSuite))
}

func (s *AnalyticsUseCaseTestSuite) day(v string) time.Time {
	d, err := entity.ParseDate(v)
	s.Require().NoError(err)
	return d
}

func (s *AnalyticsUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = fixedClock{now: time.Date(2024, 4, 15, 18, 30, 0, 0, time.UTC)}
	s.metrics = &recordingMetrics{}

	s.groceries = entity.NewCategory("Groceries", entity.CategoryTypeExpense, "", "")
	s.salary = entity.NewCategory("Salary", entity.CategoryTypeIncome, "", "")
	s.savings = entity.NewCategory("Savings", entity.CategoryTypeSavings, "", "")

	deadline := s.day("2024-05-05")
	s.trip = entity.NewGoal("Trip", decimal.NewFromInt(1000), &deadline, 1)

	april := entity.Period{Year: 2024, Month: time.April}
	s.ledger = &memoryLedger{
		categories: []*entity.Category{s.groceries, s.salary, s.savings},
		budgets:    []*entity.Budget{entity.NewBudget(s.groceries.ID, april, decimal.NewFromInt(300))},
		goals:      []*entity.Goal{s.trip},
		settings:   map[string]string{entity.SettingMonthlySalary: "2500"},
		transactions: []*entity.Transaction{
			entity.NewTransaction(s.day("2024-03-01"), decimal.NewFromInt(650), entity.Income{}, s.salary.ID, ""),
			entity.NewTransaction(s.day("2024-03-05"), decimal.NewFromInt(600), entity.Expense{}, s.groceries.ID, ""),
			entity.NewTransaction(s.day("2024-04-02"), decimal.NewFromInt(200), entity.Expense{}, s.groceries.ID, ""),
			entity.NewTransaction(s.day("2024-04-10"), decimal.NewFromInt(70), entity.Expense{}, s.groceries.ID, ""),
			entity.NewTransaction(s.day("2024-04-11"), decimal.NewFromInt(100), entity.Income{}, s.salary.ID, ""),
			entity.NewTransaction(s.day("2024-04-15"), decimal.NewFromInt(100), entity.Transfer{GoalID: s.trip.ID}, s.savings.ID, ""),
		},
	}
}

func (s *AnalyticsUseCaseTestSuite) TestMonthSummary() {
	uc := NewGetMonthSummaryUseCase(s.ledger, s.metrics)

	out, err := uc.Execute(s.ctx, GetMonthSummaryInput{Month: "2024-04"})
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(2600).Equal(out.Summary.TotalIncome))
	s.True(decimal.NewFromInt(270).Equal(out.Summary.TotalExpense))
	s.True(decimal.NewFromInt(2330).Equal(out.Summary.Balance))
	s.Equal([]recordedQuery{{operation: "summary"}}, s.metrics.queries)
}

func (s *AnalyticsUseCaseTestSuite) TestMonthSummary_Validation() {
	uc := NewGetMonthSummaryUseCase(s.ledger, nil)

	_, err := uc.Execute(s.ctx, GetMonthSummaryInput{})
	var analyticsErr *domainerror.AnalyticsError
	s.Require().True(errors.As(err, &analyticsErr))
	s.Equal(domainerror.ErrCodeMissingPeriod, analyticsErr.Code)

	_, err = uc.Execute(s.ctx, GetMonthSummaryInput{Month: "April"})
	s.Require().True(errors.As(err, &analyticsErr))
	s.Equal(domainerror.ErrCodeInvalidPeriod, analyticsErr.Code)
}

func (s *AnalyticsUseCaseTestSuite) TestMonthSummary_BadSalarySetting() {
	s.ledger.settings[entity.SettingMonthlySalary] = "lots"

	_, err := NewGetMonthSummaryUseCase(s.ledger, nil).Execute(s.ctx, GetMonthSummaryInput{Month: "2024-04"})
	s.ErrorIs(err, domainerror.ErrInvalidSalary)
}

func (s *AnalyticsUseCaseTestSuite) TestMonthSummary_StoreFailure() {
	s.ledger.err = errors.New("disk on fire")

	_, err := NewGetMonthSummaryUseCase(s.ledger, s.metrics).Execute(s.ctx, GetMonthSummaryInput{Month: "2024-04"})
	s.ErrorContains(err, "disk on fire")
	s.True(s.metrics.queries[0].failed)
}

func (s *AnalyticsUseCaseTestSuite) TestBudgetStatus() {
	uc := NewGetBudgetStatusUseCase(s.ledger, s.clock, nil)

	out, err := uc.Execute(s.ctx, GetBudgetStatusInput{Month: "2024-04"})
	s.Require().NoError(err)
	s.Require().Len(out.Rows, 1)

	row := out.Rows[0]
	s.Equal("Groceries", row.Category.Name)
	s.Require().NotNil(row.Pacing)
	s.True(row.Pacing.PacingBad)
	s.True(row.Pacing.Warning)
	s.False(row.Pacing.Over)
	s.InDelta(0.5, out.Progress.Fraction, 1e-9)
}

func (s *AnalyticsUseCaseTestSuite) TestBudgetStatus_PastMonthIsFullyElapsed() {
	asOf := s.day("2024-06-01")
	out, err := NewGetBudgetStatusUseCase(s.ledger, s.clock, nil).Execute(s.ctx, GetBudgetStatusInput{Month: "2024-04", AsOf: &asOf})
	s.Require().NoError(err)
	s.Equal(1.0, out.Progress.Fraction)
	s.False(out.Rows[0].Pacing.PacingBad)
}

func (s *AnalyticsUseCaseTestSuite) TestForecast() {
	out, err := NewGetForecastUseCase(s.ledger, s.clock, s.metrics).Execute(s.ctx, GetForecastInput{})
	s.Require().NoError(err)

	f := out.Forecast
	s.Equal(s.day("2024-04-15"), f.AsOf)
	s.Equal(15, f.MonthEnd.DaysRemaining)
	s.True(decimal.NewFromInt(570).Equal(f.MonthEnd.ProjectedSpend), f.MonthEnd.ProjectedSpend.String())
	s.True(decimal.NewFromInt(50).Equal(f.Outlook.MonthlySurplus))
	s.Require().Len(f.GoalETAs, 1)
	s.Equal(18, *f.GoalETAs[0].MonthsNeeded)
}

func (s *AnalyticsUseCaseTestSuite) TestInsights() {
	uc := NewGetInsightsUseCase(s.ledger, s.clock, nil, s.metrics)

	out, err := uc.Execute(s.ctx, GetInsightsInput{})
	s.Require().NoError(err)
	s.Require().NotEmpty(out.Insights)

	s.Equal(insight.TypeSuccess, out.Insights[0].Type)
	for i := 1; i < len(out.Insights); i++ {
		s.LessOrEqual(out.Insights[i-1].Priority, out.Insights[i].Priority)
	}
	s.Equal(1, s.metrics.insights["celebration"])
	s.Equal(1, s.metrics.insights["goal_risk"])
}

func (s *AnalyticsUseCaseTestSuite) TestGoalProgress() {
	out, err := NewGetGoalProgressUseCase(s.ledger, s.clock, nil).Execute(s.ctx, GetGoalProgressInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Goals, 1)

	g := out.Goals[0]
	s.True(decimal.NewFromInt(100).Equal(g.Balance))
	s.True(g.AtRisk)
	s.InDelta(20.0, *g.DaysLeft, 1e-9)
}

func (s *AnalyticsUseCaseTestSuite) TestCategoryBreakdown_DanglingCategory() {
	s.ledger.transactions = append(s.ledger.transactions,
		entity.NewTransaction(s.day("2024-04-03"), decimal.NewFromInt(30), entity.Expense{}, uuid.New(), "gone"))

	out, err := NewGetCategoryBreakdownUseCase(s.ledger, nil).Execute(s.ctx, GetCategoryBreakdownInput{Month: "2024-04"})
	s.Require().NoError(err)
	s.Require().Len(out.Categories, 2)
	s.Equal(entity.UncategorizedName, out.Categories[1].Category.Name)
	s.True(decimal.NewFromInt(300).Equal(out.Total))
}
