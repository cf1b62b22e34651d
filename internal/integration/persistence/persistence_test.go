package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// openTestDB opens a private in-memory database with the ledger schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type RepositoryTestSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = openTestDB(s.T())
}

func (s *RepositoryTestSuite) date(v string) time.Time {
	d, err := entity.ParseDate(v)
	s.Require().NoError(err)
	return d
}

func (s *RepositoryTestSuite) TestCategoryRepository() {
	repo := NewCategoryRepository(s.db)

	seeded, err := SeedDefaultCategories(s.ctx, repo)
	s.Require().NoError(err)
	s.Equal(len(entity.DefaultCategories()), seeded)

	again, err := SeedDefaultCategories(s.ctx, repo)
	s.Require().NoError(err)
	s.Zero(again)

	exists, err := repo.ExistsByName(s.ctx, "GROCERIES", nil)
	s.Require().NoError(err)
	s.True(exists)

	savings, err := repo.FindByType(s.ctx, entity.CategoryTypeSavings)
	s.Require().NoError(err)
	s.Require().Len(savings, 1)

	exists, err = repo.ExistsByName(s.ctx, "Savings", &savings[0].ID)
	s.Require().NoError(err)
	s.False(exists)

	savings[0].IsHidden = true
	savings[0].Description = "rainy day"
	s.Require().NoError(repo.Update(s.ctx, savings[0]))

	found, err := repo.FindByID(s.ctx, savings[0].ID)
	s.Require().NoError(err)
	s.True(found.IsHidden)
	s.Equal("rainy day", found.Description)

	_, err = repo.FindByID(s.ctx, uuid.New())
	s.ErrorIs(err, domainerror.ErrCategoryNotFound)
}

func (s *RepositoryTestSuite) TestTransactionRepository() {
	repo := NewTransactionRepository(s.db)
	category := uuid.New()
	goal := uuid.New()

	march := entity.NewTransaction(s.date("2024-03-31"), decimal.RequireFromString("10.25"), entity.Expense{}, category, "a")
	april := entity.NewTransaction(s.date("2024-04-01"), decimal.NewFromInt(20), entity.Transfer{GoalID: goal}, category, "b")
	s.Require().NoError(repo.Create(s.ctx, march))
	s.Require().NoError(repo.Create(s.ctx, april))

	all, err := repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(april.ID, all[0].ID)
	s.True(all[0].IsTransfer())
	s.Equal(goal, *all[0].GoalID())
	s.True(decimal.RequireFromString("10.25").Equal(all[1].Amount))

	period := entity.Period{Year: 2024, Month: time.March}
	inMarch, err := repo.List(s.ctx, &period)
	s.Require().NoError(err)
	s.Require().Len(inMarch, 1)
	s.Equal(march.ID, inMarch[0].ID)
	s.Equal(s.date("2024-03-31"), inMarch[0].Date)

	s.Require().NoError(repo.Delete(s.ctx, march.ID))
	_, err = repo.FindByID(s.ctx, march.ID)
	s.ErrorIs(err, domainerror.ErrTransactionNotFound)
	s.ErrorIs(repo.Delete(s.ctx, march.ID), domainerror.ErrTransactionNotFound)
}

func (s *RepositoryTestSuite) TestBudgetRepository_UpsertKeepsOneRowPerMonth() {
	repo := NewBudgetRepository(s.db)
	category := uuid.New()
	april := entity.Period{Year: 2024, Month: time.April}

	first := entity.NewBudget(category, april, decimal.NewFromInt(300))
	s.Require().NoError(repo.Upsert(s.ctx, first))
	second := entity.NewBudget(category, april, decimal.NewFromInt(450))
	s.Require().NoError(repo.Upsert(s.ctx, second))
	s.Equal(first.ID, second.ID)

	budgets, err := repo.FindByPeriod(s.ctx, april)
	s.Require().NoError(err)
	s.Require().Len(budgets, 1)
	s.True(decimal.NewFromInt(450).Equal(budgets[0].Amount))
	s.Equal(april, budgets[0].Period)

	s.Require().NoError(repo.DeleteByCategoryAndPeriod(s.ctx, category, april))
	budgets, err = repo.FindByPeriod(s.ctx, april)
	s.Require().NoError(err)
	s.Empty(budgets)
}

func (s *RepositoryTestSuite) TestCategoryRepository_DeleteLeavesTransactionsUncategorized() {
	categories := NewCategoryRepository(s.db)
	budgets := NewBudgetRepository(s.db)
	transactions := NewTransactionRepository(s.db)
	march := entity.Period{Year: 2024, Month: time.March}

	pets := entity.NewCategory("Pets", entity.CategoryTypeExpense, "", "")
	s.Require().NoError(categories.Create(s.ctx, pets))
	s.Require().NoError(budgets.Upsert(s.ctx, entity.NewBudget(pets.ID, march, decimal.NewFromInt(80))))
	s.Require().NoError(transactions.Create(s.ctx, entity.NewTransaction(s.date("2024-03-05"), decimal.NewFromInt(35), entity.Expense{}, pets.ID, "vet")))

	s.Require().NoError(categories.Delete(s.ctx, pets.ID))
	s.ErrorIs(categories.Delete(s.ctx, pets.ID), domainerror.ErrCategoryNotFound)

	left, err := budgets.FindByPeriod(s.ctx, march)
	s.Require().NoError(err)
	s.Empty(left)

	kept, err := transactions.List(s.ctx, &march)
	s.Require().NoError(err)
	s.Require().Len(kept, 1)
	s.Equal(pets.ID, kept[0].CategoryID)

	out, err := analytics.NewGetCategoryBreakdownUseCase(NewLedgerReader(s.db), nil).
		Execute(s.ctx, analytics.GetCategoryBreakdownInput{Month: "2024-03"})
	s.Require().NoError(err)
	s.Require().Len(out.Categories, 1)
	s.Equal(entity.UncategorizedName, out.Categories[0].Category.Name)
	s.True(decimal.NewFromInt(35).Equal(out.Categories[0].Amount))
}

func (s *RepositoryTestSuite) TestGoalRepository_Ordering() {
	repo := NewGoalRepository(s.db)
	soon, later := s.date("2024-05-01"), s.date("2024-09-01")

	open := entity.NewGoal("Open", decimal.NewFromInt(100), nil, 1)
	late := entity.NewGoal("Late", decimal.NewFromInt(100), &later, 1)
	early := entity.NewGoal("Early", decimal.NewFromInt(100), &soon, 1)
	low := entity.NewGoal("Low", decimal.NewFromInt(100), &soon, 3)
	for _, g := range []*entity.Goal{open, late, low, early} {
		s.Require().NoError(repo.Create(s.ctx, g))
	}

	low.IsCompleted = true
	s.Require().NoError(repo.Update(s.ctx, low))

	active, err := repo.List(s.ctx, false)
	s.Require().NoError(err)
	s.Equal([]string{"Early", "Late", "Open"}, goalNames(active))

	all, err := repo.List(s.ctx, true)
	s.Require().NoError(err)
	s.Equal([]string{"Early", "Late", "Open", "Low"}, goalNames(all))

	s.Require().NoError(repo.Delete(s.ctx, open.ID))
	_, err = repo.FindByID(s.ctx, open.ID)
	s.ErrorIs(err, domainerror.ErrGoalNotFound)
}

func (s *RepositoryTestSuite) TestSettingRepository() {
	repo := NewSettingRepository(s.db)

	_, ok, err := repo.Get(s.ctx, entity.SettingMonthlySalary)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(repo.Set(s.ctx, entity.SettingMonthlySalary, "2000"))
	s.Require().NoError(repo.Set(s.ctx, entity.SettingMonthlySalary, "2500"))

	v, ok, err := repo.Get(s.ctx, entity.SettingMonthlySalary)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("2500", v)

	reader := NewLedgerReader(s.db)
	got, err := reader.GetSetting(s.ctx, entity.SettingMonthlySalary)
	s.Require().NoError(err)
	s.Equal("2500", *got)

	missing, err := reader.GetSetting(s.ctx, "nope")
	s.Require().NoError(err)
	s.Nil(missing)
}

func goalNames(goals []*entity.Goal) []string {
	names := make([]string, len(goals))
	for i, g := range goals {
		names[i] = g.Name
	}
	return names
}
