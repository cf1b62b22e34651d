package setting

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter/adaptertest"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func TestUpdateSalaryUseCase(t *testing.T) {
	ctx := context.Background()
	ledger := adaptertest.NewLedger()
	update := NewUpdateSalaryUseCase(ledger.SettingRepository(), nil)

	_, err := update.Execute(ctx, UpdateSalaryInput{Salary: decimal.RequireFromString("2500.50")})
	require.NoError(t, err)
	assert.Equal(t, "2500.5", ledger.Settings[entity.SettingMonthlySalary])

	_, err = update.Execute(ctx, UpdateSalaryInput{Salary: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domainerror.ErrInvalidSalary)
	assert.Equal(t, "2500.5", ledger.Settings[entity.SettingMonthlySalary])

	got, err := NewGetSettingsUseCase(ledger.SettingRepository()).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{entity.SettingMonthlySalary: "2500.5"}, got.Settings)
}
