package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// settingRepository implements the adapter.SettingRepository interface.
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance.
func NewSettingRepository(db *gorm.DB) adapter.SettingRepository {
	return &settingRepository{db: db}
}

// Get returns the value of key and whether it is set.
func (r *settingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var setting model.SettingModel
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, result.Error
	}
	return setting.Value, true, nil
}

// Set creates or replaces key.
func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.SettingModel{Key: key, Value: value}).Error
}

// All returns every setting ordered by key.
func (r *settingRepository) All(ctx context.Context) ([]entity.Setting, error) {
	return allSettings(r.db.WithContext(ctx))
}

func allSettings(db *gorm.DB) ([]entity.Setting, error) {
	var settingModels []model.SettingModel
	if err := db.Order("key ASC").Find(&settingModels).Error; err != nil {
		return nil, err
	}
	settings := make([]entity.Setting, len(settingModels))
	for i, m := range settingModels {
		settings[i] = entity.Setting{Key: m.Key, Value: m.Value}
	}
	return settings, nil
}
