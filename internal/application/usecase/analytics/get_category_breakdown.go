package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainanalytics "github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetCategoryBreakdownInput represents the input for the category breakdown.
type GetCategoryBreakdownInput struct {
	Month string
}

// GetCategoryBreakdownOutput represents the output of the category breakdown.
type GetCategoryBreakdownOutput struct {
	Period     entity.Period
	Total      decimal.Decimal
	Categories []domainanalytics.CategorySpend
}

// GetCategoryBreakdownUseCase splits a month's expenses by category.
type GetCategoryBreakdownUseCase struct {
	reader  adapter.LedgerReader
	metrics adapter.MetricsRecorder
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(reader adapter.LedgerReader, metrics adapter.MetricsRecorder) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		reader:  reader,
		metrics: metrics,
	}
}

// Execute computes the breakdown.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (output *GetCategoryBreakdownOutput, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "category_breakdown", start, err) }()

	period, err := parsePeriod(input.Month)
	if err != nil {
		return nil, err
	}

	var (
		txs        []*entity.Transaction
		categories []*entity.Category
	)
	err = uc.reader.WithinSnapshot(ctx, func(reader adapter.LedgerReader) error {
		var err error
		if txs, err = reader.ListTransactions(ctx, &period); err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		if categories, err = reader.ListCategories(ctx); err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	breakdown, err := domainanalytics.CategoryBreakdown(period, categories, txs)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, c := range breakdown {
		total = total.Add(c.Amount)
	}
	return &GetCategoryBreakdownOutput{
		Period:     period,
		Total:      total,
		Categories: breakdown,
	}, nil
}
