package adapter

import (
	"context"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SettingRepository defines the interface for key/value settings.
type SettingRepository interface {
	// Get returns the value of key and whether it is set.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces key.
	Set(ctx context.Context, key, value string) error

	// All returns every setting.
	All(ctx context.Context) ([]entity.Setting, error)
}
