package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// Pacing thresholds.
const (
	warningBurnRate   = 0.8
	pacingMargin      = 0.1
	goalRiskWindow    = 30.0
	goalRiskFundShare = 0.9
)

var goalRiskShare = decimal.NewFromFloat(goalRiskFundShare)

// MonthProgress is the elapsed fraction of a calendar month.
type MonthProgress struct {
	Period      entity.Period
	Day         int
	DaysInMonth int
	Fraction    float64
}

// DaysRemaining is the number of whole days left after Day.
func (m MonthProgress) DaysRemaining() int {
	return m.DaysInMonth - m.Day
}

// ProgressOf returns dayOfMonth / daysInMonth for the month containing ref.
func ProgressOf(ref time.Time) MonthProgress {
	period := entity.PeriodOf(ref)
	days := period.DaysIn()
	return MonthProgress{
		Period:      period,
		Day:         ref.Day(),
		DaysInMonth: days,
		Fraction:    float64(ref.Day()) / float64(days),
	}
}

// ProgressFor evaluates period as seen from ref: a finished month counts as
// fully elapsed and a future month as not started.
func ProgressFor(period entity.Period, ref time.Time) MonthProgress {
	current := entity.PeriodOf(ref)
	switch {
	case period == current:
		return ProgressOf(ref)
	case period.Before(current):
		days := period.DaysIn()
		return MonthProgress{Period: period, Day: days, DaysInMonth: days, Fraction: 1}
	default:
		return MonthProgress{Period: period, DaysInMonth: period.DaysIn()}
	}
}

// BudgetPacing carries the independent flags of a budgeted category.
type BudgetPacing struct {
	BudgetStatus
	BurnRate  float64
	Over      bool
	Warning   bool
	PacingBad bool
}

// EvaluateBudgets flags the budgeted categories among statuses. Categories
// without a limit are skipped so no ratio is ever taken over zero.
func EvaluateBudgets(statuses []BudgetStatus, progress MonthProgress) []BudgetPacing {
	pacing := make([]BudgetPacing, 0, len(statuses))
	for _, s := range statuses {
		burn, ok := ratio(s.Spent, s.BudgetLimit)
		if !ok {
			continue
		}
		over := s.Remaining.IsNegative()
		pacing = append(pacing, BudgetPacing{
			BudgetStatus: s,
			BurnRate:     burn,
			Over:         over,
			Warning:      !over && burn > warningBurnRate,
			PacingBad:    burn > progress.Fraction+pacingMargin,
		})
	}
	return pacing
}

// GoalBalances derives each goal's balance: transfers into it minus expenses
// drawn from it.
func GoalBalances(txs []*entity.Transaction) map[uuid.UUID]decimal.Decimal {
	balances := make(map[uuid.UUID]decimal.Decimal)
	for _, tx := range txs {
		switch k := tx.Kind.(type) {
		case entity.Transfer:
			balances[k.GoalID] = balances[k.GoalID].Add(tx.Amount)
		case entity.Expense:
			if k.GoalID != nil {
				balances[*k.GoalID] = balances[*k.GoalID].Sub(tx.Amount)
			}
		}
	}
	return balances
}

// GoalProgress is a goal with its derived balance and deadline flags.
type GoalProgress struct {
	Goal      *entity.Goal
	Balance   decimal.Decimal
	Remaining decimal.Decimal
	// Percent is Balance over TargetAmount in percent, 0 for a zero target.
	Percent float64
	// DaysLeft is fractional and nil for goals without a deadline.
	DaysLeft       *float64
	AtRisk         bool
	DeadlinePassed bool
}

// DaysUntil returns the fractional number of days from ref to deadline.
func DaysUntil(deadline, ref time.Time) float64 {
	return float64(deadline.Sub(ref)) / float64(24*time.Hour)
}

// EvaluateGoals derives progress for goals as of ref. A goal whose deadline is
// behind ref is reported as DeadlinePassed, never as AtRisk.
func EvaluateGoals(goals []*entity.Goal, balances map[uuid.UUID]decimal.Decimal, ref time.Time) []GoalProgress {
	progress := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		balance := balances[g.ID]
		remaining := g.TargetAmount.Sub(balance)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		gp := GoalProgress{
			Goal:      g,
			Balance:   balance,
			Remaining: remaining,
		}
		if pct, ok := ratio(balance, g.TargetAmount); ok {
			gp.Percent = pct * 100
		}

		if g.Deadline != nil {
			daysLeft := DaysUntil(*g.Deadline, ref)
			gp.DaysLeft = &daysLeft

			short := balance.LessThan(g.TargetAmount.Mul(goalRiskShare))
			if !g.IsCompleted && short && daysLeft < goalRiskWindow {
				gp.DeadlinePassed = daysLeft < 0
				gp.AtRisk = !gp.DeadlinePassed
			}
		}
		progress = append(progress, gp)
	}
	return progress
}
