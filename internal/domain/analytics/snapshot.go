// Package analytics derives summaries, pacing, forecasts and other read-only
// figures from a ledger snapshot. Nothing in this package performs I/O; callers
// load a Snapshot through the ledger reader and pass a reference date.
package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// Snapshot is the ledger state visible to one analytics query.
type Snapshot struct {
	Transactions []*entity.Transaction
	Categories   []*entity.Category
	// Budgets holds the rows of the reference month.
	Budgets []*entity.Budget
	// Goals holds completed and active goals alike.
	Goals  []*entity.Goal
	Salary decimal.Decimal
}

// Category resolves id, falling back to an "Uncategorized" placeholder for
// dangling references.
func (s *Snapshot) Category(id uuid.UUID) *entity.Category {
	for _, c := range s.Categories {
		if c.ID == id {
			return c
		}
	}
	return Uncategorized(id)
}

// ActiveGoals returns the incomplete goals, most urgent first.
func (s *Snapshot) ActiveGoals() []*entity.Goal {
	active := make([]*entity.Goal, 0, len(s.Goals))
	for _, g := range s.Goals {
		if !g.IsCompleted {
			active = append(active, g)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].RanksBefore(active[j])
	})
	return active
}

// Uncategorized is the placeholder used for a category id with no row.
func Uncategorized(id uuid.UUID) *entity.Category {
	return &entity.Category{
		ID:   id,
		Name: entity.UncategorizedName,
		Type: entity.CategoryTypeExpense,
		Icon: entity.DefaultCategoryIcon,
	}
}

// Totals sums a set of transactions by kind.
type Totals struct {
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Transferred decimal.Decimal
}

// Net is income minus expense. Transfers are movements into goals and do not
// count against the surplus.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

func (t *Totals) add(tx *entity.Transaction) {
	switch tx.Kind.(type) {
	case entity.Income:
		t.Income = t.Income.Add(tx.Amount)
	case entity.Expense:
		t.Expense = t.Expense.Add(tx.Amount)
	case entity.Transfer:
		t.Transferred = t.Transferred.Add(tx.Amount)
	}
}

// MonthTotals sums the transactions dated inside period.
func MonthTotals(period entity.Period, txs []*entity.Transaction) Totals {
	var totals Totals
	for _, tx := range txs {
		if period.Contains(tx.Date) {
			totals.add(tx)
		}
	}
	return totals
}

// monthly buckets income/expense totals per calendar month, remembering which
// months had any income or expense rows.
type monthly struct {
	totals   map[entity.Period]Totals
	expenses map[entity.Period]int
	flows    map[entity.Period]int
}

func bucketByMonth(txs []*entity.Transaction) monthly {
	m := monthly{
		totals:   make(map[entity.Period]Totals),
		expenses: make(map[entity.Period]int),
		flows:    make(map[entity.Period]int),
	}
	for _, tx := range txs {
		p := entity.PeriodOf(tx.Date)
		t := m.totals[p]
		t.add(tx)
		m.totals[p] = t
		switch tx.Kind.(type) {
		case entity.Expense:
			m.expenses[p]++
			m.flows[p]++
		case entity.Income:
			m.flows[p]++
		}
	}
	return m
}

// spendByCategory sums expense amounts per category inside period.
func spendByCategory(period entity.Period, txs []*entity.Transaction) map[uuid.UUID]decimal.Decimal {
	spent := make(map[uuid.UUID]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsExpense() || !period.Contains(tx.Date) {
			continue
		}
		spent[tx.CategoryID] = spent[tx.CategoryID].Add(tx.Amount)
	}
	return spent
}

// SpendByCategory is the exported form of the per-category expense sum.
func SpendByCategory(period entity.Period, txs []*entity.Transaction) map[uuid.UUID]decimal.Decimal {
	return spendByCategory(period, txs)
}

// ratio divides num by den, returning ok=false when den is not positive.
func ratio(num, den decimal.Decimal) (float64, bool) {
	if !den.IsPositive() {
		return 0, false
	}
	return num.Div(den).InexactFloat64(), true
}
