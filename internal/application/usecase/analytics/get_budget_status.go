package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainanalytics "github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetBudgetStatusInput represents the input for budget status.
type GetBudgetStatusInput struct {
	Month string
	// AsOf overrides today when judging pacing.
	AsOf *time.Time
}

// BudgetStatusRow is a budget status with its pacing flags. Pacing is nil for
// categories without a budget.
type BudgetStatusRow struct {
	domainanalytics.BudgetStatus
	Pacing *domainanalytics.BudgetPacing
}

// GetBudgetStatusOutput represents the output of budget status.
type GetBudgetStatusOutput struct {
	Period   entity.Period
	Progress domainanalytics.MonthProgress
	Rows     []BudgetStatusRow
}

// GetBudgetStatusUseCase reports spend against budget for every visible expense category.
type GetBudgetStatusUseCase struct {
	reader  adapter.LedgerReader
	clock   adapter.Clock
	metrics adapter.MetricsRecorder
}

// NewGetBudgetStatusUseCase creates a new GetBudgetStatusUseCase instance.
func NewGetBudgetStatusUseCase(reader adapter.LedgerReader, clock adapter.Clock, metrics adapter.MetricsRecorder) *GetBudgetStatusUseCase {
	return &GetBudgetStatusUseCase{
		reader:  reader,
		clock:   clock,
		metrics: metrics,
	}
}

// Execute computes the statuses and their pacing flags.
func (uc *GetBudgetStatusUseCase) Execute(ctx context.Context, input GetBudgetStatusInput) (output *GetBudgetStatusOutput, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "budget_status", start, err) }()

	period, err := parsePeriod(input.Month)
	if err != nil {
		return nil, err
	}
	ref := referenceDate(uc.clock, input.AsOf)

	var (
		txs        []*entity.Transaction
		categories []*entity.Category
		budgets    []*entity.Budget
	)
	err = uc.reader.WithinSnapshot(ctx, func(reader adapter.LedgerReader) error {
		var err error
		if txs, err = reader.ListTransactions(ctx, &period); err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		if categories, err = reader.ListCategories(ctx); err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if budgets, err = reader.ListBudgets(ctx, period); err != nil {
			return fmt.Errorf("failed to list budgets: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	statuses, err := domainanalytics.BudgetStatuses(period, categories, budgets, txs)
	if err != nil {
		return nil, err
	}

	progress := domainanalytics.ProgressFor(period, ref)
	pacing := make(map[uuid.UUID]domainanalytics.BudgetPacing)
	for _, p := range domainanalytics.EvaluateBudgets(statuses, progress) {
		pacing[p.Category.ID] = p
	}

	rows := make([]BudgetStatusRow, 0, len(statuses))
	for _, s := range statuses {
		row := BudgetStatusRow{BudgetStatus: s}
		if p, ok := pacing[s.Category.ID]; ok {
			row.Pacing = &p
		}
		rows = append(rows, row)
	}

	return &GetBudgetStatusOutput{
		Period:   period,
		Progress: progress,
		Rows:     rows,
	}, nil
}
