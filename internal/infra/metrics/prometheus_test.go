package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder("ledger")

	r.ObserveAnalytics("forecast", 0.01, nil)
	r.ObserveAnalytics("forecast", 0.02, errors.New("boom"))
	r.CountInsights("goal_risk", 2)
	r.CountLedgerWrite("transaction", "create")
	r.CountLedgerWrite("transaction", "create")
	r.ObserveHTTP("GET", "/api/v1/summary", 200, 0.003)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.analyticsQueries.WithLabelValues("forecast", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.analyticsQueries.WithLabelValues("forecast", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.insights.WithLabelValues("goal_risk")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ledgerWrites.WithLabelValues("transaction", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/api/v1/summary", "200")))
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	a := NewRecorder("ledger")
	b := NewRecorder("ledger")

	a.CountLedgerWrite("goal", "create")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ledgerWrites.WithLabelValues("goal", "create")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ledgerWrites.WithLabelValues("goal", "create")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder("ledger")
	r.CountLedgerWrite("budget", "upsert")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ledger_ledger_writes_total{action="upsert",entity="budget"} 1`)
}
