// Package setting contains settings-related use cases.
package setting

import (
	"context"
	"fmt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// GetSettingsOutput represents every stored setting keyed by name.
type GetSettingsOutput struct {
	Settings map[string]string
}

// GetSettingsUseCase reads all settings.
type GetSettingsUseCase struct {
	settingRepo adapter.SettingRepository
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(settingRepo adapter.SettingRepository) *GetSettingsUseCase {
	return &GetSettingsUseCase{settingRepo: settingRepo}
}

// Execute reads the settings.
func (uc *GetSettingsUseCase) Execute(ctx context.Context) (*GetSettingsOutput, error) {
	settings, err := uc.settingRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return &GetSettingsOutput{Settings: out}, nil
}
