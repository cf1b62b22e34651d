package analytics

import (
	"context"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainanalytics "github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetForecastInput represents the input for the forecast.
type GetForecastInput struct {
	AsOf *time.Time
}

// GetForecastOutput represents the output of the forecast.
type GetForecastOutput struct {
	Forecast *domainanalytics.Forecast
}

// GetForecastUseCase projects month-end spend, budget overruns, goal ETAs and the three-month drift.
type GetForecastUseCase struct {
	reader  adapter.LedgerReader
	clock   adapter.Clock
	metrics adapter.MetricsRecorder
}

// NewGetForecastUseCase creates a new GetForecastUseCase instance.
func NewGetForecastUseCase(reader adapter.LedgerReader, clock adapter.Clock, metrics adapter.MetricsRecorder) *GetForecastUseCase {
	return &GetForecastUseCase{
		reader:  reader,
		clock:   clock,
		metrics: metrics,
	}
}

// Execute builds the forecast as of the reference date.
func (uc *GetForecastUseCase) Execute(ctx context.Context, input GetForecastInput) (output *GetForecastOutput, err error) {
	start := time.Now()
	defer func() { observe(uc.metrics, "forecast", start, err) }()

	ref := referenceDate(uc.clock, input.AsOf)
	snap, err := loadSnapshot(ctx, uc.reader, entity.PeriodOf(ref))
	if err != nil {
		return nil, err
	}

	forecast, err := domainanalytics.BuildForecast(snap, ref)
	if err != nil {
		return nil, err
	}
	return &GetForecastOutput{Forecast: forecast}, nil
}
