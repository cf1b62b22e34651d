package analytics

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MonthSummary is the income/expense position of one month.
type MonthSummary struct {
	Period       entity.Period
	Salary       decimal.Decimal
	ExtraIncome  decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// BudgetStatus is the spend of one visible expense category against its limit.
// A category without a budget row has a zero limit and HasBudget false.
type BudgetStatus struct {
	Category    *entity.Category
	BudgetLimit decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	HasBudget   bool
}

// CategorySpend is one slice of a month's expense breakdown.
type CategorySpend struct {
	Category *entity.Category
	Amount   decimal.Decimal
	Count    int
	// Share is Amount over the month's total expense, 0 when nothing was spent.
	Share float64
}

func requirePeriod(period entity.Period) error {
	if period.IsZero() {
		return domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingPeriod,
			"a period (YYYY-MM) is required",
			domainerror.ErrMissingPeriod,
		)
	}
	return nil
}

// SummarizeMonth adds the salary baseline to the ledger income of period.
func SummarizeMonth(period entity.Period, txs []*entity.Transaction, salary decimal.Decimal) (*MonthSummary, error) {
	if err := requirePeriod(period); err != nil {
		return nil, err
	}
	if salary.IsNegative() {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidSalary,
			"monthly salary cannot be negative",
			domainerror.ErrInvalidSalary,
		)
	}

	totals := MonthTotals(period, txs)
	totalIncome := salary.Add(totals.Income)

	return &MonthSummary{
		Period:       period,
		Salary:       salary,
		ExtraIncome:  totals.Income,
		TotalIncome:  totalIncome,
		TotalExpense: totals.Expense,
		Balance:      totalIncome.Sub(totals.Expense),
	}, nil
}

// BudgetStatuses reports every non-hidden expense category for period,
// biggest spender first.
func BudgetStatuses(period entity.Period, categories []*entity.Category, budgets []*entity.Budget, txs []*entity.Transaction) ([]BudgetStatus, error) {
	if err := requirePeriod(period); err != nil {
		return nil, err
	}

	limits := make(map[uuid.UUID]decimal.Decimal)
	for _, b := range budgets {
		if b.Period == period {
			limits[b.CategoryID] = b.Amount
		}
	}
	spent := spendByCategory(period, txs)

	statuses := make([]BudgetStatus, 0, len(categories))
	for _, c := range categories {
		if c.IsHidden || c.Type != entity.CategoryTypeExpense {
			continue
		}
		limit := limits[c.ID]
		s := spent[c.ID]
		statuses = append(statuses, BudgetStatus{
			Category:    c,
			BudgetLimit: limit,
			Spent:       s,
			Remaining:   limit.Sub(s),
			HasBudget:   limit.IsPositive(),
		})
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		if cmp := statuses[i].Spent.Cmp(statuses[j].Spent); cmp != 0 {
			return cmp > 0
		}
		return strings.ToLower(statuses[i].Category.Name) < strings.ToLower(statuses[j].Category.Name)
	})
	return statuses, nil
}

// CategoryBreakdown groups the expenses of period by category. Spend on
// categories that no longer exist is pooled under "Uncategorized".
func CategoryBreakdown(period entity.Period, categories []*entity.Category, txs []*entity.Transaction) ([]CategorySpend, error) {
	if err := requirePeriod(period); err != nil {
		return nil, err
	}

	known := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		known[c.ID] = c
	}

	orphan := Uncategorized(uuid.Nil)
	slices := make(map[uuid.UUID]*CategorySpend)
	total := decimal.Zero
	for _, tx := range txs {
		if !tx.IsExpense() || !period.Contains(tx.Date) {
			continue
		}
		category, ok := known[tx.CategoryID]
		if !ok {
			category = orphan
		}
		slice, ok := slices[category.ID]
		if !ok {
			slice = &CategorySpend{Category: category}
			slices[category.ID] = slice
		}
		slice.Amount = slice.Amount.Add(tx.Amount)
		slice.Count++
		total = total.Add(tx.Amount)
	}

	breakdown := make([]CategorySpend, 0, len(slices))
	for _, slice := range slices {
		if share, ok := ratio(slice.Amount, total); ok {
			slice.Share = share
		}
		breakdown = append(breakdown, *slice)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if cmp := breakdown[i].Amount.Cmp(breakdown[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return breakdown[i].Category.Name < breakdown[j].Category.Name
	})
	return breakdown, nil
}
