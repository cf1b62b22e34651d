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

// GetMonthSummaryInput represents the input for the month summary.
type GetMonthSummaryInput struct {
	Month string
}

// GetMonthSummaryOutput represents the output of the month summary.
type GetMonthSummaryOutput struct {
	Summary *domainanalytics.MonthSummary
}

// GetMonthSummaryUseCase computes salary plus ledger income against expenses for a month.
type GetMonthSummaryUseCase struct {
	reader  adapter.LedgerReader
	metrics adapter.MetricsRecorder
}

// NewGetMonthSummaryUseCase creates a new GetMonthSummaryUseCase instance.
func NewGetMonthSummaryUseCase(reader adapter.LedgerReader, metrics adapter.MetricsRecorder) *GetMonthSummaryUseCase {
	return &GetMonthSummaryUseCase{
		reader:  reader,
		metrics: metrics,
	}
}

// Execute computes the summary.
func (uc *GetMonthSummaryUseCase) Execute(ctx context.Context, input GetMonthSummaryInput) (output *GetMonthSummaryOutput, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "summary", start, err) }()

	period, err := parsePeriod(input.Month)
	if err != nil {
		return nil, err
	}

	var (
		txs    []*entity.Transaction
		salary decimal.Decimal
	)
	err = uc.reader.WithinSnapshot(ctx, func(reader adapter.LedgerReader) error {
		var err error
		if txs, err = reader.ListTransactions(ctx, &period); err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		salary, err = loadSalary(ctx, reader)
		return err
	})
	if err != nil {
		return nil, err
	}

	summary, err := domainanalytics.SummarizeMonth(period, txs, salary)
	if err != nil {
		return nil, err
	}
	return &GetMonthSummaryOutput{Summary: summary}, nil
}
