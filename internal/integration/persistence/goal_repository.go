package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(model.GoalFromEntity(goal)).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// List retrieves goals ordered by priority, then deadline with open-ended goals last.
func (r *goalRepository) List(ctx context.Context, includeCompleted bool) ([]*entity.Goal, error) {
	return listGoals(r.db.WithContext(ctx), includeCompleted)
}

// Update updates an existing goal in the database.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Save(model.GoalFromEntity(goal)).Error
}

// Delete removes a goal from the database.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

func listGoals(db *gorm.DB, includeCompleted bool) ([]*entity.Goal, error) {
	query := db.Model(&model.GoalModel{})
	if !includeCompleted {
		query = query.Where("is_completed = ?", false)
	}

	var goalModels []model.GoalModel
	err := query.
		Order("priority ASC").
		Order("CASE WHEN deadline IS NULL THEN 1 ELSE 0 END").
		Order("deadline ASC, created_at ASC").
		Find(&goalModels).Error
	if err != nil {
		return nil, err
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}
