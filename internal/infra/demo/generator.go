// Package demo generates realistic sample ledgers for local development and tests.
package demo

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// Options controls the generated ledger.
type Options struct {
	// Seed makes generation deterministic.
	Seed uint64
	// Months of history ending with the month of Until.
	Months int
	// Until is the last day that may carry a transaction.
	Until time.Time
}

// Generate builds a full ledger: default categories, a salary, monthly
// budgets, a few goals and several months of transactions.
func Generate(opts Options) *adapter.LedgerState {
	if opts.Months <= 0 {
		opts.Months = 6
	}
	f := gofakeit.New(opts.Seed)
	until := entity.Day(opts.Until)

	categories := entity.DefaultCategories()
	var incomes, expenses, savings []*entity.Category
	for _, c := range categories {
		switch c.Type {
		case entity.CategoryTypeIncome:
			incomes = append(incomes, c)
		case entity.CategoryTypeExpense:
			expenses = append(expenses, c)
		case entity.CategoryTypeSavings:
			savings = append(savings, c)
		}
	}

	salary := decimal.NewFromInt(int64(f.IntRange(25, 60) * 100))
	state := &adapter.LedgerState{
		Settings:   []entity.Setting{{Key: entity.SettingMonthlySalary, Value: salary.String()}},
		Categories: categories,
	}

	for i := 0; i < f.IntRange(2, 4); i++ {
		deadline := until.AddDate(0, f.IntRange(1, 18), 0)
		target := decimal.NewFromInt(int64(f.IntRange(5, 80) * 100))
		state.Goals = append(state.Goals, entity.NewGoal(f.ProductName(), target, &deadline, f.IntRange(entity.GoalPriorityHigh, entity.GoalPriorityLow)))
	}

	first := entity.PeriodOf(until).AddMonths(-(opts.Months - 1))
	for m := 0; m < opts.Months; m++ {
		period := first.AddMonths(m)
		lastDay := period.DaysIn()
		if period == entity.PeriodOf(until) {
			lastDay = until.Day()
		}
		dayIn := func() time.Time {
			return period.Start().AddDate(0, 0, f.IntRange(0, lastDay-1))
		}

		for _, c := range expenses {
			if f.IntRange(0, 2) > 0 {
				state.Budgets = append(state.Budgets, entity.NewBudget(c.ID, period, decimal.NewFromInt(int64(f.IntRange(2, 12)*50))))
			}
		}

		if len(incomes) > 0 && f.IntRange(0, 2) == 0 {
			state.Transactions = append(state.Transactions, entity.NewTransaction(
				dayIn(), money(f, 50, 600), entity.Income{}, incomes[f.IntRange(0, len(incomes)-1)].ID, "Side gig: "+f.Company()))
		}

		for i := 0; i < f.IntRange(8, 20); i++ {
			c := expenses[f.IntRange(0, len(expenses)-1)]
			state.Transactions = append(state.Transactions, entity.NewTransaction(
				dayIn(), money(f, 3, 180), entity.Expense{}, c.ID, f.Company()))
		}

		if len(savings) > 0 && len(state.Goals) > 0 {
			goal := state.Goals[f.IntRange(0, len(state.Goals)-1)]
			state.Transactions = append(state.Transactions, entity.NewTransaction(
				dayIn(), money(f, 50, 400), entity.Transfer{GoalID: goal.ID}, savings[0].ID, "Saved towards goal"))
		}
	}

	return state
}

func money(f *gofakeit.Faker, lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(f.Price(lo, hi)).Round(2)
}
