package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	domainanalytics "github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SetBudgetRequest represents the request body for setting a monthly budget.
// A non-positive amount removes the budget.
type SetBudgetRequest struct {
	CategoryID string          `json:"category_id" binding:"required,uuid"`
	Month      string          `json:"month" binding:"required,period"`
	Amount     decimal.Decimal `json:"amount"`
}

// BudgetStatusQuery selects the month and reference day of a status report.
type BudgetStatusQuery struct {
	Month string `form:"month"`
	AsOfQuery
}

// BudgetResponse represents a single budget row.
type BudgetResponse struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"category_id"`
	Month      string  `json:"month"`
	Amount     float64 `json:"amount"`
}

// BudgetListResponse represents the budgets of one month.
type BudgetListResponse struct {
	Month   string           `json:"month"`
	Budgets []BudgetResponse `json:"budgets"`
}

// SetBudgetResponse reports the stored budget, or its removal.
type SetBudgetResponse struct {
	Success bool            `json:"success"`
	Removed bool            `json:"removed"`
	Budget  *BudgetResponse `json:"budget,omitempty"`
}

// BudgetStatusResponse is one expense category with its spend against budget.
type BudgetStatusResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	BudgetLimit float64  `json:"budget_limit"`
	Spent       float64  `json:"spent"`
	Remaining   float64  `json:"remaining"`
	HasBudget   bool     `json:"has_budget"`
	BurnRate    *float64 `json:"burn_rate,omitempty"`
	Over        bool     `json:"over"`
	Warning     bool     `json:"warning"`
	PacingBad   bool     `json:"pacing_bad"`
}

// MonthProgressResponse describes how far into the month the report is.
type MonthProgressResponse struct {
	Day         int     `json:"day"`
	DaysInMonth int     `json:"days_in_month"`
	Fraction    float64 `json:"fraction"`
}

// BudgetStatusListResponse represents the budget status report.
type BudgetStatusListResponse struct {
	Month    string                 `json:"month"`
	Progress MonthProgressResponse  `json:"progress"`
	Statuses []BudgetStatusResponse `json:"statuses"`
}

// ToBudgetResponse converts a budget entity to its DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:         b.ID.String(),
		CategoryID: b.CategoryID.String(),
		Month:      b.Period.String(),
		Amount:     money(b.Amount),
	}
}

// ToBudgetListResponse converts the budgets of a month to their DTO.
func ToBudgetListResponse(period entity.Period, budgets []*entity.Budget) BudgetListResponse {
	out := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		out[i] = ToBudgetResponse(b)
	}
	return BudgetListResponse{Month: period.String(), Budgets: out}
}

// ToBudgetStatusListResponse converts the status report to its DTO.
func ToBudgetStatusListResponse(period entity.Period, progress domainanalytics.MonthProgress, rows []analytics.BudgetStatusRow) BudgetStatusListResponse {
	out := make([]BudgetStatusResponse, len(rows))
	for i, r := range rows {
		out[i] = BudgetStatusResponse{
			ID:          r.Category.ID.String(),
			Name:        r.Category.Name,
			Icon:        r.Category.Icon,
			BudgetLimit: money(r.BudgetLimit),
			Spent:       money(r.Spent),
			Remaining:   money(r.Remaining),
			HasBudget:   r.HasBudget,
		}
		if r.Pacing != nil {
			burn := r.Pacing.BurnRate
			out[i].BurnRate = &burn
			out[i].Over = r.Pacing.Over
			out[i].Warning = r.Pacing.Warning
			out[i].PacingBad = r.Pacing.PacingBad
		}
	}
	return BudgetStatusListResponse{
		Month: period.String(),
		Progress: MonthProgressResponse{
			Day:         progress.Day,
			DaysInMonth: progress.DaysInMonth,
			Fraction:    progress.Fraction,
		},
		Statuses: out,
	}
}
