package analytics

import (
	"context"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/analytics/insight"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetInsightsInput represents the input for insights.
type GetInsightsInput struct {
	AsOf *time.Time
}

// GetInsightsOutput represents the output of insights, most urgent first.
type GetInsightsOutput struct {
	AsOf     time.Time
	Insights []insight.Insight
}

// GetInsightsUseCase runs the insight rules over the ledger.
type GetInsightsUseCase struct {
	reader   adapter.LedgerReader
	clock    adapter.Clock
	registry *insight.Registry
	metrics  adapter.MetricsRecorder
}

// NewGetInsightsUseCase creates a new GetInsightsUseCase instance. A nil
// registry uses every built-in rule.
func NewGetInsightsUseCase(reader adapter.LedgerReader, clock adapter.Clock, registry *insight.Registry, metrics adapter.MetricsRecorder) *GetInsightsUseCase {
	if registry == nil {
		registry = insight.DefaultRegistry()
	}
	return &GetInsightsUseCase{
		reader:   reader,
		clock:    clock,
		registry: registry,
		metrics:  metrics,
	}
}

// Execute evaluates every rule as of the reference date.
func (uc *GetInsightsUseCase) Execute(ctx context.Context, input GetInsightsInput) (output *GetInsightsOutput, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "insights", start, err) }()

	ref := referenceDate(uc.clock, input.AsOf)
	snap, err := loadSnapshot(ctx, uc.reader, entity.PeriodOf(ref))
	if err != nil {
		return nil, err
	}

	insights := uc.registry.Evaluate(snap, ref)
	if uc.metrics != nil {
		counts := make(map[string]int)
		for _, in := range insights {
			counts[in.Rule]++
		}
		for rule, n := range counts {
			uc.metrics.CountInsights(rule, n)
		}
	}

	return &GetInsightsOutput{
		AsOf:     ref,
		Insights: insights,
	}, nil
}
