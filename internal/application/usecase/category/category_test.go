package category

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter/adaptertest"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func categoryCode(t *testing.T, err error) domainerror.CategoryErrorCode {
	t.Helper()
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr), "expected CategoryError, got %v", err)
	return catErr.Code
}

func seeded() *adaptertest.Ledger {
	ledger := adaptertest.NewLedger()
	ledger.Categories = []*entity.Category{
		entity.NewCategory("Groceries", entity.CategoryTypeExpense, "🛒", ""),
		entity.NewCategory("Salary", entity.CategoryTypeIncome, "💰", ""),
	}
	hidden := entity.NewCategory("Old stuff", entity.CategoryTypeExpense, "", "")
	hidden.IsHidden = true
	ledger.Categories = append(ledger.Categories, hidden)
	return ledger
}

func TestCreateCategoryUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with default icon", func(t *testing.T) {
		ledger := seeded()
		metrics := &adaptertest.Metrics{}
		uc := NewCreateCategoryUseCase(ledger.CategoryRepository(), metrics)

		out, err := uc.Execute(ctx, CreateCategoryInput{Name: "  Pets ", Type: entity.CategoryTypeExpense})
		require.NoError(t, err)
		assert.Equal(t, "Pets", out.Category.Name)
		assert.Equal(t, entity.DefaultCategoryIcon, out.Category.Icon)
		assert.Equal(t, []string{"category.create"}, metrics.Writes)
	})

	t.Run("rejects duplicate name regardless of case", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(seeded().CategoryRepository(), nil)
		_, err := uc.Execute(ctx, CreateCategoryInput{Name: "groceries", Type: entity.CategoryTypeExpense})
		assert.Equal(t, domainerror.ErrCodeCategoryNameExists, categoryCode(t, err))
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(seeded().CategoryRepository(), nil)
		_, err := uc.Execute(ctx, CreateCategoryInput{Name: "Pets", Type: "transfer"})
		assert.Equal(t, domainerror.ErrCodeInvalidCategoryType, categoryCode(t, err))
	})

	t.Run("rejects missing and long names", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(seeded().CategoryRepository(), nil)
		_, err := uc.Execute(ctx, CreateCategoryInput{Name: " ", Type: entity.CategoryTypeExpense})
		assert.Equal(t, domainerror.ErrCodeMissingCategoryFields, categoryCode(t, err))

		_, err = uc.Execute(ctx, CreateCategoryInput{Name: strings.Repeat("a", MaxCategoryNameLength+1), Type: entity.CategoryTypeExpense})
		assert.Equal(t, domainerror.ErrCodeCategoryNameTooLong, categoryCode(t, err))
	})
}

func TestListCategoriesUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewListCategoriesUseCase(seeded().CategoryRepository())

	out, err := uc.Execute(ctx, ListCategoriesInput{})
	require.NoError(t, err)
	assert.Len(t, out.Categories, 2)

	out, err = uc.Execute(ctx, ListCategoriesInput{IncludeHidden: true})
	require.NoError(t, err)
	assert.Len(t, out.Categories, 3)

	income := entity.CategoryTypeIncome
	out, err = uc.Execute(ctx, ListCategoriesInput{Type: &income})
	require.NoError(t, err)
	require.Len(t, out.Categories, 1)
	assert.Equal(t, "Salary", out.Categories[0].Name)

	bogus := entity.CategoryType("bogus")
	_, err = uc.Execute(ctx, ListCategoriesInput{Type: &bogus})
	assert.Equal(t, domainerror.ErrCodeInvalidCategoryType, categoryCode(t, err))
}

func TestUpdateCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	ledger := seeded()
	groceries := ledger.Categories[0]
	uc := NewUpdateCategoryUseCase(ledger.CategoryRepository(), nil)

	t.Run("applies only provided fields", func(t *testing.T) {
		name, hidden := "Food", true
		out, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: groceries.ID, Name: &name, IsHidden: &hidden})
		require.NoError(t, err)
		assert.Equal(t, "Food", out.Category.Name)
		assert.Equal(t, "🛒", out.Category.Icon)
		assert.True(t, out.Category.IsHidden)
	})

	t.Run("keeping its own name is not a conflict", func(t *testing.T) {
		name := "Food"
		_, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: groceries.ID, Name: &name})
		require.NoError(t, err)
	})

	t.Run("rejects another category's name", func(t *testing.T) {
		name := "Salary"
		_, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: groceries.ID, Name: &name})
		assert.Equal(t, domainerror.ErrCodeCategoryNameExists, categoryCode(t, err))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: uuid.New()})
		assert.Equal(t, domainerror.ErrCodeCategoryNotFound, categoryCode(t, err))
	})
}

func TestDeleteCategoryUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("removes budgets and keeps transactions", func(t *testing.T) {
		ledger := seeded()
		groceries, salary := ledger.Categories[0], ledger.Categories[1]
		march := entity.PeriodOf(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		ledger.Budgets = []*entity.Budget{
			entity.NewBudget(groceries.ID, march, decimal.NewFromInt(300)),
			entity.NewBudget(salary.ID, march, decimal.NewFromInt(10)),
		}
		spent := entity.NewTransaction(march.Start(), decimal.NewFromInt(42), entity.Expense{}, groceries.ID, "market")
		ledger.Transactions = []*entity.Transaction{spent}
		metrics := &adaptertest.Metrics{}

		err := NewDeleteCategoryUseCase(ledger.CategoryRepository(), metrics).Execute(ctx, DeleteCategoryInput{CategoryID: groceries.ID})
		require.NoError(t, err)

		for _, c := range ledger.Categories {
			assert.NotEqual(t, groceries.ID, c.ID)
		}
		require.Len(t, ledger.Budgets, 1)
		assert.Equal(t, salary.ID, ledger.Budgets[0].CategoryID)
		require.Len(t, ledger.Transactions, 1)
		assert.Equal(t, groceries.ID, ledger.Transactions[0].CategoryID)
		assert.Equal(t, []string{"category.delete"}, metrics.Writes)
	})

	t.Run("unknown category", func(t *testing.T) {
		err := NewDeleteCategoryUseCase(seeded().CategoryRepository(), nil).Execute(ctx, DeleteCategoryInput{CategoryID: uuid.New()})
		assert.Equal(t, domainerror.ErrCodeCategoryNotFound, categoryCode(t, err))
	})
}
