package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domainanalytics "github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/analytics/insight"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SummaryQuery selects the summary month.
type SummaryQuery struct {
	Month string `form:"month"`
}

// MonthSummaryResponse represents a month's income and spending totals.
type MonthSummaryResponse struct {
	Month        string  `json:"month"`
	Salary       float64 `json:"salary"`
	ExtraIncome  float64 `json:"extra_income"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// ToMonthSummaryResponse converts a month summary to its DTO.
func ToMonthSummaryResponse(s *domainanalytics.MonthSummary) MonthSummaryResponse {
	return MonthSummaryResponse{
		Month:        s.Period.String(),
		Salary:       money(s.Salary),
		ExtraIncome:  money(s.ExtraIncome),
		TotalIncome:  money(s.TotalIncome),
		TotalExpense: money(s.TotalExpense),
		Balance:      money(s.Balance),
	}
}

// CategorySpendResponse is one category's share of the month's spending.
type CategorySpendResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Icon  string  `json:"icon"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// CategoryBreakdownResponse represents spending by category.
type CategoryBreakdownResponse struct {
	Month      string                  `json:"month"`
	Total      float64                 `json:"total"`
	Categories []CategorySpendResponse `json:"categories"`
}

// ToCategoryBreakdownResponse converts the breakdown to its DTO.
func ToCategoryBreakdownResponse(period entity.Period, total decimal.Decimal, spend []domainanalytics.CategorySpend) CategoryBreakdownResponse {
	out := make([]CategorySpendResponse, len(spend))
	for i, s := range spend {
		out[i] = CategorySpendResponse{
			ID:    s.Category.ID.String(),
			Name:  s.Category.Name,
			Icon:  s.Category.Icon,
			Total: money(s.Amount),
			Count: s.Count,
			Share: s.Share,
		}
	}
	return CategoryBreakdownResponse{Month: period.String(), Total: money(total), Categories: out}
}

// MonthEndResponse is the end-of-month projection.
type MonthEndResponse struct {
	Month            string  `json:"month"`
	CurrentSpend     float64 `json:"current_spend"`
	CurrentIncome    float64 `json:"current_income"`
	DailyVelocity    float64 `json:"daily_velocity"`
	DaysRemaining    int     `json:"days_remaining"`
	ProjectedSpend   float64 `json:"projected_spend"`
	ProjectedBalance float64 `json:"projected_balance"`
	Confidence       string  `json:"confidence"`
}

// BudgetRiskResponse is a budget projected to overrun.
type BudgetRiskResponse struct {
	CategoryID     string  `json:"category_id"`
	Category       string  `json:"category"`
	Risk           string  `json:"risk"`
	BurnRate       float64 `json:"burn_rate"`
	Spent          float64 `json:"spent"`
	Budget         float64 `json:"budget"`
	ProjectedTotal float64 `json:"projected_total"`
	Overage        float64 `json:"overage"`
}

// GoalETAResponse estimates when a goal is reached.
type GoalETAResponse struct {
	GoalID       string  `json:"goal_id"`
	Name         string  `json:"name"`
	Balance      float64 `json:"balance"`
	Remaining    float64 `json:"remaining"`
	MonthsNeeded *int    `json:"months_needed"`
	ETA          *string `json:"eta"`
	Feasibility  string  `json:"feasibility"`
}

// OutlookResponse is the three-month drift.
type OutlookResponse struct {
	MonthlySurplus float64 `json:"monthly_surplus"`
	ProjectedDrift float64 `json:"projected_change"`
	Direction      string  `json:"direction"`
}

// ForecastResponse bundles every projection.
type ForecastResponse struct {
	AsOf        string               `json:"as_of"`
	MonthEnd    MonthEndResponse     `json:"month_end"`
	BudgetRisks []BudgetRiskResponse `json:"budget_risks"`
	GoalETAs    []GoalETAResponse    `json:"goal_etas"`
	Outlook     OutlookResponse      `json:"outlook"`
}

// ToForecastResponse converts a forecast to its DTO.
func ToForecastResponse(f *domainanalytics.Forecast) ForecastResponse {
	risks := make([]BudgetRiskResponse, len(f.BudgetRisks))
	for i, r := range f.BudgetRisks {
		risks[i] = BudgetRiskResponse{
			CategoryID:     r.Category.ID.String(),
			Category:       r.Category.Name,
			Risk:           string(r.Risk),
			BurnRate:       r.BurnRate,
			Spent:          money(r.Spent),
			Budget:         money(r.Budget),
			ProjectedTotal: money(r.ProjectedTotal),
			Overage:        money(r.Overage),
		}
	}

	etas := make([]GoalETAResponse, len(f.GoalETAs))
	for i, g := range f.GoalETAs {
		etas[i] = GoalETAResponse{
			GoalID:       g.Goal.ID.String(),
			Name:         g.Goal.Name,
			Balance:      money(g.Balance),
			Remaining:    money(g.Remaining),
			MonthsNeeded: g.MonthsNeeded,
			ETA:          optionalDate(g.ETA),
			Feasibility:  string(g.Feasibility),
		}
	}

	m := f.MonthEnd
	return ForecastResponse{
		AsOf: dateString(f.AsOf),
		MonthEnd: MonthEndResponse{
			Month:            m.Period.String(),
			CurrentSpend:     money(m.CurrentSpend),
			CurrentIncome:    money(m.CurrentIncome),
			DailyVelocity:    money(m.DailyVelocity),
			DaysRemaining:    m.DaysRemaining,
			ProjectedSpend:   money(m.ProjectedSpend),
			ProjectedBalance: money(m.ProjectedBalance),
			Confidence:       string(m.Confidence),
		},
		BudgetRisks: risks,
		GoalETAs:    etas,
		Outlook: OutlookResponse{
			MonthlySurplus: money(f.Outlook.MonthlySurplus),
			ProjectedDrift: money(f.Outlook.Drift),
			Direction:      string(f.Outlook.Direction),
		},
	}
}

// InsightResponse is one finding.
type InsightResponse struct {
	Rule       string   `json:"rule"`
	Type       string   `json:"type"`
	Priority   int      `json:"priority"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	CategoryID *string  `json:"category_id,omitempty"`
	GoalID     *string  `json:"goal_id,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
}

// InsightListResponse represents the insights as of one day.
type InsightListResponse struct {
	AsOf     string            `json:"as_of"`
	Insights []InsightResponse `json:"insights"`
}

// ToInsightListResponse converts insights to their DTO.
func ToInsightListResponse(asOf time.Time, insights []insight.Insight) InsightListResponse {
	out := make([]InsightResponse, len(insights))
	for i, in := range insights {
		out[i] = InsightResponse{
			Rule:     in.Rule,
			Type:     string(in.Type),
			Priority: in.Priority,
			Title:    in.Title,
			Message:  in.Message,
		}
		if in.CategoryID != nil {
			s := in.CategoryID.String()
			out[i].CategoryID = &s
		}
		if in.GoalID != nil {
			s := in.GoalID.String()
			out[i].GoalID = &s
		}
		if in.Amount != nil {
			a := money(*in.Amount)
			out[i].Amount = &a
		}
	}
	return InsightListResponse{AsOf: dateString(asOf), Insights: out}
}
