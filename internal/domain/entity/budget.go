package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is the spending limit for one category in one month.
type Budget struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Period     Period
	Amount     decimal.Decimal
	UpdatedAt  time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(categoryID uuid.UUID, period Period, amount decimal.Decimal) *Budget {
	return &Budget{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Period:     period,
		Amount:     amount,
		UpdatedAt:  time.Now().UTC(),
	}
}

// SettingMonthlySalary is the key of the fixed monthly income baseline.
const SettingMonthlySalary = "monthly_salary"

// Setting is a key/value preference.
type Setting struct {
	Key   string
	Value string
}
