package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

func day(s string) time.Time {
	d, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func period(s string) entity.Period {
	p, err := entity.ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func income(date, amount string, category uuid.UUID) *entity.Transaction {
	return entity.NewTransaction(day(date), dec(amount), entity.Income{}, category, "")
}

func expense(date, amount string, category uuid.UUID) *entity.Transaction {
	return entity.NewTransaction(day(date), dec(amount), entity.Expense{}, category, "")
}

func transfer(date, amount string, category, goal uuid.UUID) *entity.Transaction {
	return entity.NewTransaction(day(date), dec(amount), entity.Transfer{GoalID: goal}, category, "")
}

func category(name string, kind entity.CategoryType) *entity.Category {
	return entity.NewCategory(name, kind, "", "")
}
