// Package analytics contains the read-only use cases that derive summaries,
// budget pacing, forecasts and insights from the ledger.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainanalytics "github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// parsePeriod validates a required YYYY-MM period.
func parsePeriod(raw string) (entity.Period, error) {
	if strings.TrimSpace(raw) == "" {
		return entity.Period{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingPeriod,
			"month is required (YYYY-MM)",
			domainerror.ErrMissingPeriod,
		)
	}
	period, err := entity.ParsePeriod(raw)
	if err != nil {
		return entity.Period{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidPeriod,
			"month must be formatted as YYYY-MM",
			domainerror.ErrInvalidPeriod,
		)
	}
	return period, nil
}

// referenceDate returns asOf when given, otherwise today according to clock.
func referenceDate(clock adapter.Clock, asOf *time.Time) time.Time {
	if asOf != nil {
		return entity.Day(*asOf)
	}
	return entity.Day(clock.Now().UTC())
}

// loadSalary reads the monthly salary setting. An unset salary is zero.
func loadSalary(ctx context.Context, reader adapter.LedgerReader) (decimal.Decimal, error) {
	raw, err := reader.GetSetting(ctx, entity.SettingMonthlySalary)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read salary setting: %w", err)
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return decimal.Zero, nil
	}
	salary, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return decimal.Zero, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidSalary,
			"stored monthly salary is not a number",
			domainerror.ErrInvalidSalary,
		)
	}
	return salary, nil
}

// loadSnapshot reads the whole ledger with the budgets of period, all as
// of the same instant.
func loadSnapshot(ctx context.Context, ledger adapter.LedgerReader, period entity.Period) (*domainanalytics.Snapshot, error) {
	snap := &domainanalytics.Snapshot{}
	err := ledger.WithinSnapshot(ctx, func(reader adapter.LedgerReader) error {
		var err error
		if snap.Transactions, err = reader.ListTransactions(ctx, nil); err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		if snap.Categories, err = reader.ListCategories(ctx); err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if snap.Budgets, err = reader.ListBudgets(ctx, period); err != nil {
			return fmt.Errorf("failed to list budgets: %w", err)
		}
		if snap.Goals, err = reader.ListGoals(ctx, true); err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}
		snap.Salary, err = loadSalary(ctx, reader)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// observe reports one query to metrics, logging failures that are not
// caller mistakes.
func observe(metrics adapter.MetricsRecorder, operation string, start time.Time, err error) {
	if metrics != nil {
		metrics.ObserveAnalytics(operation, time.Since(start).Seconds(), err)
	}
	if err != nil && !isValidation(err) {
		slog.Error("analytics query failed", "operation", operation, "error", err)
	}
}

func isValidation(err error) bool {
	var analyticsErr *domainerror.AnalyticsError
	return errors.As(err, &analyticsErr)
}
