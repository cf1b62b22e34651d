package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// BudgetModel represents the budgets table. A category has at most one
// budget per month.
type BudgetModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_category_month"`
	Month      string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_budget_category_month;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() (*entity.Budget, error) {
	period, err := entity.ParsePeriod(m.Month)
	if err != nil {
		return nil, fmt.Errorf("budget %s: %w", m.ID, err)
	}
	return &entity.Budget{
		ID:         m.ID,
		CategoryID: m.CategoryID,
		Period:     period,
		Amount:     m.Amount,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:         budget.ID,
		CategoryID: budget.CategoryID,
		Month:      budget.Period.String(),
		Amount:     budget.Amount,
		UpdatedAt:  budget.UpdatedAt,
	}
}

// SettingModel represents the settings key/value table.
type SettingModel struct {
	Key   string `gorm:"type:varchar(64);primaryKey"`
	Value string `gorm:"type:text;not null"`
}

// TableName returns the table name for the SettingModel.
func (SettingModel) TableName() string {
	return "settings"
}

// All lists every model for migrations, in dependency order.
func All() []any {
	return []any{
		&SettingModel{},
		&CategoryModel{},
		&GoalModel{},
		&BudgetModel{},
		&TransactionModel{},
	}
}
