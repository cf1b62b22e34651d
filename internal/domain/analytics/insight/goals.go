package insight

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

const (
	goalRiskDays = 30.0
	daysPerMonth = 30.0
)

var (
	goalRiskSurplusShare = decimal.NewFromFloat(0.5)
	conflictFactor       = decimal.NewFromFloat(1.2)
	opportunityMin       = decimal.NewFromInt(200)
)

// RequiredMonthly is the contribution per month that reaches the goal by its
// deadline. Goals without a deadline or already funded need nothing; a passed
// deadline needs the whole remainder now.
func RequiredMonthly(g *entity.Goal, balance decimal.Decimal, ref time.Time) decimal.Decimal {
	remaining := g.TargetAmount.Sub(balance)
	if g.Deadline == nil || !remaining.IsPositive() {
		return decimal.Zero
	}
	months := math.Ceil(analytics.DaysUntil(*g.Deadline, ref) / daysPerMonth)
	if months < 1 {
		months = 1
	}
	return remaining.Div(decimal.NewFromFloat(months))
}

// GoalRisk flags deadline goals the surplus cannot cover in time, and the
// case where all active goals together ask for more than 1.2x the surplus.
type GoalRisk struct{}

func (GoalRisk) Name() string { return "goal_risk" }

func (r GoalRisk) Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight {
	active := snap.ActiveGoals()
	if len(active) == 0 {
		return nil
	}
	surplus := analytics.MonthlySurplus(entity.PeriodOf(ref), snap.Transactions)
	balances := analytics.GoalBalances(snap.Transactions)

	var insights []Insight
	required := decimal.Zero
	for _, g := range active {
		balance := balances[g.ID]
		required = required.Add(RequiredMonthly(g, balance, ref))

		if g.Deadline == nil {
			continue
		}
		daysLeft := analytics.DaysUntil(*g.Deadline, ref)
		remaining := g.TargetAmount.Sub(balance)
		if daysLeft >= goalRiskDays || !remaining.IsPositive() || !remaining.GreaterThan(surplus.Mul(goalRiskSurplusShare)) {
			continue
		}

		title := fmt.Sprintf("Goal at risk: %s", g.Name)
		message := fmt.Sprintf("The deadline is in %d days and you are %s short.", int(math.Ceil(daysLeft)), money(remaining))
		if daysLeft < 0 {
			title = fmt.Sprintf("Deadline passed: %s", g.Name)
			message = fmt.Sprintf("The deadline passed %d days ago and you are %s short.", int(math.Ceil(-daysLeft)), money(remaining))
		}
		insights = append(insights, Insight{
			Rule:     r.Name(),
			Type:     TypeRisk,
			Priority: 1,
			Title:    title,
			Message:  message,
			GoalID:   idPtr(g.ID),
			Amount:   amountPtr(remaining),
		})
	}

	if len(active) > 1 && required.IsPositive() && required.GreaterThan(surplus.Mul(conflictFactor)) {
		insights = append(insights, Insight{
			Rule:     r.Name(),
			Type:     TypeRisk,
			Priority: 2,
			Title:    "Goals compete for the same money",
			Message: fmt.Sprintf("Your %d goals need %s a month together, but you save about %s a month.",
				len(active), money(required.Round(2)), money(surplus.Round(2))),
			Amount: amountPtr(required.Round(2)),
		})
	}
	return insights
}

// Opportunity suggests moving a healthy surplus into the most urgent goal.
type Opportunity struct{}

func (Opportunity) Name() string { return "opportunity" }

func (r Opportunity) Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight {
	active := snap.ActiveGoals()
	if len(active) == 0 {
		return nil
	}
	surplus := analytics.MonthlySurplus(entity.PeriodOf(ref), snap.Transactions)
	if !surplus.GreaterThan(opportunityMin) {
		return nil
	}

	top := active[0]
	return []Insight{{
		Rule:     r.Name(),
		Type:     TypeOpportunity,
		Priority: 3,
		Title:    fmt.Sprintf("Put your surplus to work: %s", top.Name),
		Message:  fmt.Sprintf("You keep about %s a month. Moving it to %s would speed it up.", money(surplus.Round(2)), top.Name),
		GoalID:   idPtr(top.ID),
		Amount:   amountPtr(surplus.Round(2)),
	}}
}

// Celebration recognises money moved into goals today.
type Celebration struct{}

func (Celebration) Name() string { return "celebration" }

func (r Celebration) Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight {
	today := entity.Day(ref)
	saved := decimal.Zero
	found := false
	for _, tx := range snap.Transactions {
		if tx.IsTransfer() && entity.Day(tx.Date).Equal(today) {
			saved = saved.Add(tx.Amount)
			found = true
		}
	}
	if !found {
		return nil
	}

	return []Insight{{
		Rule:     r.Name(),
		Type:     TypeSuccess,
		Priority: 0,
		Title:    "Great job saving!",
		Message:  fmt.Sprintf("You moved %s into your goals today. Keep this momentum up!", money(saved)),
		Amount:   amountPtr(saved),
	}}
}
