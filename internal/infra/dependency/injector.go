// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	"github.com/finance-tracker/ledger/internal/application/usecase/backup"
	"github.com/finance-tracker/ledger/internal/application/usecase/budget"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/application/usecase/goal"
	"github.com/finance-tracker/ledger/internal/application/usecase/setting"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/analytics/insight"
	"github.com/finance-tracker/ledger/internal/infra/clock"
	"github.com/finance-tracker/ledger/internal/infra/metrics"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger/internal/integration/export"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

// Options carries the optional collaborators of the injector. Zero values
// fall back to the system clock, an in-memory rate limiter and no metrics.
type Options struct {
	Clock   adapter.Clock
	Redis   *redis.Client
	Metrics *metrics.Recorder
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	// A nil *Recorder must not reach the use cases as a non-nil interface.
	var recorder adapter.MetricsRecorder
	var exporter router.MetricsExporter
	if opts.Metrics != nil {
		recorder = opts.Metrics
		exporter = opts.Metrics
	}

	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	settingRepo := persistence.NewSettingRepository(db)
	backupRepo := persistence.NewBackupRepository(db)
	reader := persistence.NewLedgerReader(db)

	// Create analytics use cases
	summaryUseCase := analytics.NewGetMonthSummaryUseCase(reader, recorder)
	breakdownUseCase := analytics.NewGetCategoryBreakdownUseCase(reader, recorder)
	budgetStatusUseCase := analytics.NewGetBudgetStatusUseCase(reader, clk, recorder)
	forecastUseCase := analytics.NewGetForecastUseCase(reader, clk, recorder)
	insightsUseCase := analytics.NewGetInsightsUseCase(reader, clk, insight.DefaultRegistry(), recorder)
	goalProgressUseCase := analytics.NewGetGoalProgressUseCase(reader, clk, recorder)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, categoryRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, goalRepo, recorder)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, recorder)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, recorder)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, recorder)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, recorder)

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	setBudgetUseCase := budget.NewSetBudgetUseCase(budgetRepo, categoryRepo, recorder)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, transactionRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, recorder)
	fundGoalUseCase := goal.NewFundGoalUseCase(goalRepo, categoryRepo, transactionRepo, clk, recorder)
	completeGoalUseCase := goal.NewCompleteGoalUseCase(goalRepo, recorder)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo, recorder)

	// Create setting use cases
	getSettingsUseCase := setting.NewGetSettingsUseCase(settingRepo)
	updateSalaryUseCase := setting.NewUpdateSalaryUseCase(settingRepo, recorder)

	// Create backup use cases
	jsonCodec := export.NewJSONCodec()
	exportUseCase := backup.NewExportLedgerUseCase(backupRepo, clk, jsonCodec, export.NewCSVEncoder(), export.NewXLSXEncoder())
	importUseCase := backup.NewImportLedgerUseCase(backupRepo, jsonCodec, recorder)

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}, clk),
		Analytics: controller.NewAnalyticsController(
			summaryUseCase,
			breakdownUseCase,
			budgetStatusUseCase,
			forecastUseCase,
			insightsUseCase,
			goalProgressUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			deleteTransactionUseCase,
		),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		),
		Budget: controller.NewBudgetController(listBudgetsUseCase, setBudgetUseCase),
		Goal: controller.NewGoalController(
			listGoalsUseCase,
			createGoalUseCase,
			fundGoalUseCase,
			completeGoalUseCase,
			deleteGoalUseCase,
		),
		Setting: controller.NewSettingController(getSettingsUseCase, updateSalaryUseCase),
		Data:    controller.NewDataController(exportUseCase, importUseCase, cfg.Server.MaxImportBytes),
	}

	// Create middleware
	// E2E runs restore the ledger between scenarios
	var store middleware.Store = middleware.NewMemoryStore()
	if opts.Redis != nil {
		store = middleware.NewRedisStore(opts.Redis, "ledger:ratelimit:")
	}
	importLimit := cfg.RateLimit.ImportRequests
	if cfg.Server.Environment == "e2e" {
		importLimit = 1000
	}
	importLimiter := middleware.NewRateLimiterWithConfig(store, "import", importLimit, cfg.RateLimit.ImportWindow)

	// Create router
	r := router.NewRouter(controllers, importLimiter, exporter)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
