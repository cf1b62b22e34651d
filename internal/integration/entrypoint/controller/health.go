package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
	clock           adapter.Clock
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool, clock adapter.Clock) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		clock:           clock,
	}
}

// Check handles GET /health requests.
// The API stays up without a database; the status is "degraded" then.
func (h *HealthController) Check(c *gin.Context) {
	status, dbStatus := "degraded", "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		status, dbStatus = "ok", "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	})
}
