package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

const (
	spikeWindowMonths = 4
	spikeMinMonths    = 2
	spikeThreshold    = 0.20
	spikeMaxProgress  = 0.8

	creepWindowMonths   = 6
	creepMinOccurrences = 3
	creepThreshold      = 1.05

	inflationExpenseGrowth = 0.10
	inflationIncomeGrowth  = 0.05

	pacingAlertMaxProgress = 0.9
	pacingAlertMargin      = 0.25
)

var creepMinAmount = decimal.NewFromInt(10)

// growth returns (cur - prev) / prev, ok=false when prev is not positive.
func growth(cur, prev decimal.Decimal) (float64, bool) {
	if !prev.IsPositive() {
		return 0, false
	}
	return cur.Sub(prev).Div(prev).InexactFloat64(), true
}

// categoryOrder sorts the keys of spend by category name for stable output.
func categoryOrder(snap *analytics.Snapshot, spend map[uuid.UUID]decimal.Decimal) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(spend))
	for id := range spend {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, nj := snap.Category(ids[i]).Name, snap.Category(ids[j]).Name
		if ni != nj {
			return ni < nj
		}
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// SpendingSpike flags categories on track to exceed their trailing average by
// more than 20%.
type SpendingSpike struct{}

func (SpendingSpike) Name() string { return "spending_spike" }

func (r SpendingSpike) Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight {
	progress := analytics.ProgressOf(ref)
	if progress.Fraction <= 0 || progress.Fraction >= spikeMaxProgress {
		return nil
	}

	current := analytics.SpendByCategory(progress.Period, snap.Transactions)
	history := make([]map[uuid.UUID]decimal.Decimal, 0, spikeWindowMonths)
	for i := 1; i <= spikeWindowMonths; i++ {
		history = append(history, analytics.SpendByCategory(progress.Period.AddMonths(-i), snap.Transactions))
	}

	var insights []Insight
	for _, id := range categoryOrder(snap, current) {
		sum := decimal.Zero
		months := 0
		for _, month := range history {
			if spent, ok := month[id]; ok && spent.IsPositive() {
				sum = sum.Add(spent)
				months++
			}
		}
		if months < spikeMinMonths {
			continue
		}

		avg := sum.Div(decimal.NewFromInt(int64(months)))
		projected := current[id].Div(decimal.NewFromFloat(progress.Fraction))
		g, ok := growth(projected, avg)
		if !ok || g <= spikeThreshold {
			continue
		}

		category := snap.Category(id)
		insights = append(insights, Insight{
			Rule:     r.Name(),
			Type:     TypeRisk,
			Priority: 1,
			Title:    fmt.Sprintf("Spending spike: %s", category.Name),
			Message: fmt.Sprintf("You are on pace to spend %s on %s this month, %s above your %d-month average of %s.",
				money(projected.Round(2)), category.Name, percent(g), months, money(avg.Round(2))),
			CategoryID: idPtr(id),
			Amount:     amountPtr(projected.Round(2)),
		})
	}
	return insights
}

// RecurringCreep flags repeated charges whose latest amount rose more than 5%
// over their earlier average.
type RecurringCreep struct{}

func (RecurringCreep) Name() string { return "recurring_creep" }

func (r RecurringCreep) Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight {
	from := entity.PeriodOf(ref).AddMonths(-(creepWindowMonths - 1)).Start()
	until := entity.Day(ref).AddDate(0, 0, 1)
	fold := cases.Fold()

	groups := make(map[string][]*entity.Transaction)
	for _, tx := range snap.Transactions {
		if !tx.IsExpense() || tx.Date.Before(from) || !tx.Date.Before(until) {
			continue
		}
		key := fold.String(strings.TrimSpace(tx.Description))
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	keys := make([]string, 0, len(groups))
	for key, charges := range groups {
		if len(charges) >= creepMinOccurrences {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var insights []Insight
	for _, key := range keys {
		charges := groups[key]
		sort.SliceStable(charges, func(i, j int) bool {
			return charges[i].Date.Before(charges[j].Date)
		})

		latest := charges[len(charges)-1]
		earlier := decimal.Zero
		for _, c := range charges[:len(charges)-1] {
			earlier = earlier.Add(c.Amount)
		}
		avg := earlier.Div(decimal.NewFromInt(int64(len(charges) - 1)))

		if !latest.Amount.GreaterThan(avg.Mul(decimal.NewFromFloat(creepThreshold))) || !latest.Amount.GreaterThan(creepMinAmount) {
			continue
		}

		label := strings.TrimSpace(latest.Description)
		insights = append(insights, Insight{
			Rule:     r.Name(),
			Type:     TypeObservation,
			Priority: 2,
			Title:    fmt.Sprintf("Recurring charge went up: %s", label),
			Message: fmt.Sprintf("%s charged %s on %s, up from an average of %s over %d earlier charges.",
				label, money(latest.Amount), latest.Date.Format(entity.DateLayout), money(avg.Round(2)), len(charges)-1),
			CategoryID: idPtr(latest.CategoryID),
			Amount:     amountPtr(latest.Amount),
		})
	}
	return insights
}

// LifestyleInflation flags expense growth above 10% month over month while
// income grew 5% or less.
type LifestyleInflation struct{}

func (LifestyleInflation) Name() string { return "lifestyle_inflation" }

func (r LifestyleInflation) Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight {
	period := entity.PeriodOf(ref)
	cur := analytics.MonthTotals(period, snap.Transactions)
	prev := analytics.MonthTotals(period.AddMonths(-1), snap.Transactions)

	expenseGrowth, ok := growth(cur.Expense, prev.Expense)
	if !ok || expenseGrowth <= inflationExpenseGrowth {
		return nil
	}

	incomeGrowth, ok := growth(cur.Income, prev.Income)
	if !ok {
		// Income appearing from nothing is unbounded growth.
		if cur.Income.IsPositive() {
			return nil
		}
		incomeGrowth = 0
	}
	if incomeGrowth > inflationIncomeGrowth {
		return nil
	}

	return []Insight{{
		Rule:     r.Name(),
		Type:     TypeTrend,
		Priority: 2,
		Title:    "Spending is outgrowing income",
		Message: fmt.Sprintf("Expenses rose %s versus last month (%s to %s) while income changed %s.",
			percent(expenseGrowth), money(prev.Expense), money(cur.Expense), percent(incomeGrowth)),
		Amount: amountPtr(cur.Expense.Sub(prev.Expense)),
	}}
}

// PacingAlert warns when a budget is being used 25 points faster than the
// month is passing. It stays quiet in the last tenth of the month.
type PacingAlert struct{}

func (PacingAlert) Name() string { return "pacing_alert" }

func (r PacingAlert) Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight {
	progress := analytics.ProgressOf(ref)
	if progress.Fraction >= pacingAlertMaxProgress {
		return nil
	}

	statuses, err := analytics.BudgetStatuses(progress.Period, snap.Categories, snap.Budgets, snap.Transactions)
	if err != nil {
		return nil
	}

	var insights []Insight
	for _, s := range statuses {
		if !s.HasBudget || !s.Spent.IsPositive() {
			continue
		}
		burn := s.Spent.Div(s.BudgetLimit).InexactFloat64()
		if burn <= progress.Fraction+pacingAlertMargin {
			continue
		}
		insights = append(insights, Insight{
			Rule:     r.Name(),
			Type:     TypeWarning,
			Priority: 1,
			Title:    fmt.Sprintf("Pacing alert: %s", s.Category.Name),
			Message: fmt.Sprintf("You've used %s of your budget, but the month is only %s done.",
				percent(burn), percent(progress.Fraction)),
			CategoryID: idPtr(s.Category.ID),
			Amount:     amountPtr(s.Spent),
		})
	}
	return insights
}
