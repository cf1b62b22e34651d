package adapter

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// MetricsRecorder receives analytics instrumentation.
type MetricsRecorder interface {
	// ObserveAnalytics records one analytics query and whether it failed.
	ObserveAnalytics(operation string, seconds float64, err error)

	// CountInsights records how many insights of each rule were produced.
	CountInsights(rule string, n int)

	// CountLedgerWrite records a successful ledger mutation.
	CountLedgerWrite(entity, action string)
}
