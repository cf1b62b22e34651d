package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Upsert inserts the budget or replaces the amount of the existing
// (category, month) row. The stored row id is written back to budget.
func (r *budgetRepository) Upsert(ctx context.Context, budget *entity.Budget) error {
	budget.UpdatedAt = time.Now().UTC()
	budgetModel := model.BudgetFromEntity(budget)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(budgetModel).Error
		if err != nil {
			return err
		}

		var stored model.BudgetModel
		if err := tx.Where("category_id = ? AND month = ?", budgetModel.CategoryID, budgetModel.Month).First(&stored).Error; err != nil {
			return err
		}
		budget.ID = stored.ID
		return nil
	})
}

// DeleteByCategoryAndPeriod removes the budget of (category, period) if present.
func (r *budgetRepository) DeleteByCategoryAndPeriod(ctx context.Context, categoryID uuid.UUID, period entity.Period) error {
	return r.db.WithContext(ctx).
		Where("category_id = ? AND month = ?", categoryID, period.String()).
		Delete(&model.BudgetModel{}).Error
}

// FindByPeriod retrieves the budgets of one month.
func (r *budgetRepository) FindByPeriod(ctx context.Context, period entity.Period) ([]*entity.Budget, error) {
	return findBudgets(r.db.WithContext(ctx).Where("month = ?", period.String()))
}

func findBudgets(db *gorm.DB) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	if err := db.Order("month ASC, category_id ASC").Find(&budgetModels).Error; err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, 0, len(budgetModels))
	for i := range budgetModels {
		b, err := budgetModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}
