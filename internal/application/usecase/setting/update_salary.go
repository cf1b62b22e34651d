package setting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateSalaryInput represents the input for setting the monthly salary.
type UpdateSalaryInput struct {
	Salary decimal.Decimal
}

// UpdateSalaryOutput represents the stored salary.
type UpdateSalaryOutput struct {
	Salary decimal.Decimal
}

// UpdateSalaryUseCase stores the fixed monthly income baseline.
type UpdateSalaryUseCase struct {
	settingRepo adapter.SettingRepository
	metrics     adapter.MetricsRecorder
}

// NewUpdateSalaryUseCase creates a new UpdateSalaryUseCase instance.
func NewUpdateSalaryUseCase(settingRepo adapter.SettingRepository, metrics adapter.MetricsRecorder) *UpdateSalaryUseCase {
	return &UpdateSalaryUseCase{
		settingRepo: settingRepo,
		metrics:     metrics,
	}
}

// Execute stores the salary.
func (uc *UpdateSalaryUseCase) Execute(ctx context.Context, input UpdateSalaryInput) (*UpdateSalaryOutput, error) {
	if input.Salary.IsNegative() {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidSalary,
			"salary must not be negative",
			domainerror.ErrInvalidSalary,
		)
	}

	if err := uc.settingRepo.Set(ctx, entity.SettingMonthlySalary, input.Salary.String()); err != nil {
		return nil, fmt.Errorf("failed to store salary: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.CountLedgerWrite("setting", "update")
	}

	return &UpdateSalaryOutput{Salary: input.Salary}, nil
}
