package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/goal"
	domainanalytics "github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     *string         `json:"deadline,omitempty" binding:"omitempty,isodate"`
	Priority     int             `json:"priority,omitempty" binding:"omitempty,min=1,max=3"`
}

// FundGoalRequest represents the request body for funding a goal.
type FundGoalRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *string         `json:"date,omitempty" binding:"omitempty,isodate"`
}

// ListGoalsQuery filters the goal list.
type ListGoalsQuery struct {
	IncludeCompleted bool `form:"include_completed"`
}

// GoalProgressQuery filters the goal progress report.
type GoalProgressQuery struct {
	AsOfQuery
	IncludeCompleted bool `form:"include_completed"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TargetAmount   float64   `json:"target_amount"`
	CurrentBalance float64   `json:"current_balance"`
	Deadline       *string   `json:"deadline"`
	Priority       int       `json:"priority"`
	IsCompleted    bool      `json:"is_completed"`
	CreatedAt      time.Time `json:"created_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// GoalProgressResponse is one goal with its pacing flags.
type GoalProgressResponse struct {
	GoalResponse
	Remaining      float64  `json:"remaining"`
	Percent        float64  `json:"percent"`
	DaysLeft       *float64 `json:"days_left"`
	AtRisk         bool     `json:"at_risk"`
	DeadlinePassed bool     `json:"deadline_passed"`
}

// GoalProgressListResponse represents the goal progress report.
type GoalProgressListResponse struct {
	AsOf  string                 `json:"as_of"`
	Goals []GoalProgressResponse `json:"goals"`
}

// ToGoalResponse converts a goal and its balance to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal, balance decimal.Decimal) GoalResponse {
	return GoalResponse{
		ID:             g.ID.String(),
		Name:           g.Name,
		TargetAmount:   money(g.TargetAmount),
		CurrentBalance: money(balance),
		Deadline:       optionalDate(g.Deadline),
		Priority:       g.Priority,
		IsCompleted:    g.IsCompleted,
		CreatedAt:      g.CreatedAt,
	}
}

// ToGoalListResponse converts goal outputs to a GoalListResponse.
func ToGoalListResponse(outputs []*goal.GoalOutput) GoalListResponse {
	out := make([]GoalResponse, len(outputs))
	for i, o := range outputs {
		out[i] = ToGoalResponse(o.Goal, o.Balance)
	}
	return GoalListResponse{Goals: out}
}

// ToGoalProgressListResponse converts the progress report to its DTO.
func ToGoalProgressListResponse(asOf time.Time, progress []domainanalytics.GoalProgress) GoalProgressListResponse {
	out := make([]GoalProgressResponse, len(progress))
	for i, p := range progress {
		out[i] = GoalProgressResponse{
			GoalResponse:   ToGoalResponse(p.Goal, p.Balance),
			Remaining:      money(p.Remaining),
			Percent:        p.Percent,
			DaysLeft:       p.DaysLeft,
			AtRisk:         p.AtRisk,
			DeadlinePassed: p.DeadlinePassed,
		}
	}
	return GoalProgressListResponse{AsOf: dateString(asOf), Goals: out}
}
