// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// MetricsExporter observes requests and serves the collected metrics.
type MetricsExporter interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

// Controllers groups the HTTP handlers mounted by the router. A nil
// controller leaves its routes unregistered.
type Controllers struct {
	Health      *controller.HealthController
	Analytics   *controller.AnalyticsController
	Transaction *controller.TransactionController
	Category    *controller.CategoryController
	Budget      *controller.BudgetController
	Goal        *controller.GoalController
	Setting     *controller.SettingController
	Data        *controller.DataController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine          *gin.Engine
	controllers     Controllers
	importLimiter   *middleware.RateLimiter
	metricsExporter MetricsExporter
}

// NewRouter creates a new router instance. importLimiter and metrics may be nil.
func NewRouter(controllers Controllers, importLimiter *middleware.RateLimiter, metrics MetricsExporter) *Router {
	return &Router{
		controllers:     controllers,
		importLimiter:   importLimiter,
		metricsExporter: metrics,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(middleware.RequestID())
	if r.metricsExporter != nil {
		r.engine.Use(middleware.Metrics(r.metricsExporter))
	}

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	if r.controllers.Health != nil {
		r.engine.GET("/health", r.controllers.Health.Check)
	}
	if r.metricsExporter != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsExporter.Handler()))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	c := r.controllers

	if c.Analytics != nil {
		v1.GET("/summary", c.Analytics.Summary)
		v1.GET("/summary/categories", c.Analytics.Categories)
		v1.GET("/budgets/status", c.Analytics.BudgetStatus)
		v1.GET("/forecast", c.Analytics.Forecast)
		v1.GET("/insights", c.Analytics.Insights)
		v1.GET("/goals/progress", c.Analytics.GoalProgress)
	}

	if c.Transaction != nil {
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", c.Transaction.List)
			transactions.POST("", c.Transaction.Create)
			transactions.DELETE("/:id", c.Transaction.Delete)
		}
	}

	if c.Category != nil {
		categories := v1.Group("/categories")
		{
			categories.GET("", c.Category.List)
			categories.POST("", c.Category.Create)
			categories.PATCH("/:id", c.Category.Update)
			categories.DELETE("/:id", c.Category.Delete)
		}
	}

	if c.Budget != nil {
		budgets := v1.Group("/budgets")
		{
			budgets.GET("", c.Budget.List)
			budgets.POST("", c.Budget.Set)
		}
	}

	if c.Goal != nil {
		goals := v1.Group("/goals")
		{
			goals.GET("", c.Goal.List)
			goals.POST("", c.Goal.Create)
			goals.POST("/:id/fund", c.Goal.Fund)
			goals.POST("/:id/complete", c.Goal.Complete)
			goals.DELETE("/:id", c.Goal.Delete)
		}
	}

	if c.Setting != nil {
		v1.GET("/settings", c.Setting.Get)
		v1.POST("/settings", c.Setting.Update)
	}

	if c.Data != nil {
		data := v1.Group("/data")
		{
			data.GET("/export", c.Data.Export)
			if r.importLimiter != nil {
				data.POST("/import", r.importLimiter.Middleware(), c.Data.Import)
			} else {
				data.POST("/import", c.Data.Import)
			}
		}
	}
}
