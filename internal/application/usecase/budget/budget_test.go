package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/finance-tracker/ledger/internal/application/adapter/adaptertest"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type BudgetUseCaseTestSuite struct {
	suite.Suite
	ctx       context.Context
	ledger    *adaptertest.Ledger
	metrics   *adaptertest.Metrics
	groceries *entity.Category
	set       *SetBudgetUseCase
	list      *ListBudgetsUseCase
}

func TestBudgetUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetUseCaseTestSuite))
}

func (s *BudgetUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ledger = adaptertest.NewLedger()
	s.metrics = &adaptertest.Metrics{}
	s.groceries = entity.NewCategory("Groceries", entity.CategoryTypeExpense, "", "")
	s.ledger.Categories = append(s.ledger.Categories, s.groceries)
	s.set = NewSetBudgetUseCase(s.ledger.BudgetRepository(), s.ledger.CategoryRepository(), s.metrics)
	s.list = NewListBudgetsUseCase(s.ledger.BudgetRepository())
}

func (s *BudgetUseCaseTestSuite) code(err error) domainerror.BudgetErrorCode {
	var budgetErr *domainerror.BudgetError
	s.Require().True(errors.As(err, &budgetErr), "expected BudgetError, got %v", err)
	return budgetErr.Code
}

func (s *BudgetUseCaseTestSuite) TestSetUpsertsPerCategoryAndMonth() {
	_, err := s.set.Execute(s.ctx, SetBudgetInput{CategoryID: s.groceries.ID, Month: "2024-04", Amount: decimal.NewFromInt(300)})
	s.Require().NoError(err)
	out, err := s.set.Execute(s.ctx, SetBudgetInput{CategoryID: s.groceries.ID, Month: "2024-04", Amount: decimal.NewFromInt(350)})
	s.Require().NoError(err)
	s.False(out.Removed)

	listed, err := s.list.Execute(s.ctx, ListBudgetsInput{Month: "2024-04"})
	s.Require().NoError(err)
	s.Require().Len(listed.Budgets, 1)
	s.True(decimal.NewFromInt(350).Equal(listed.Budgets[0].Amount))
	s.Equal([]string{"budget.upsert", "budget.upsert"}, s.metrics.Writes)
}

func (s *BudgetUseCaseTestSuite) TestSetZeroDeletes() {
	_, err := s.set.Execute(s.ctx, SetBudgetInput{CategoryID: s.groceries.ID, Month: "2024-04", Amount: decimal.NewFromInt(300)})
	s.Require().NoError(err)

	out, err := s.set.Execute(s.ctx, SetBudgetInput{CategoryID: s.groceries.ID, Month: "2024-04", Amount: decimal.Zero})
	s.Require().NoError(err)
	s.True(out.Removed)
	s.Nil(out.Budget)
	s.Empty(s.ledger.Budgets)
}

func (s *BudgetUseCaseTestSuite) TestSetValidation() {
	_, err := s.set.Execute(s.ctx, SetBudgetInput{Month: "2024-04", Amount: decimal.NewFromInt(1)})
	s.Equal(domainerror.ErrCodeMissingBudgetFields, s.code(err))

	_, err = s.set.Execute(s.ctx, SetBudgetInput{CategoryID: s.groceries.ID, Month: "2024-4", Amount: decimal.NewFromInt(1)})
	s.Equal(domainerror.ErrCodeInvalidBudgetMonth, s.code(err))

	_, err = s.set.Execute(s.ctx, SetBudgetInput{CategoryID: uuid.New(), Month: "2024-04", Amount: decimal.NewFromInt(1)})
	s.Equal(domainerror.ErrCodeBudgetCategoryNotFound, s.code(err))
}

func (s *BudgetUseCaseTestSuite) TestListRequiresMonth() {
	_, err := s.list.Execute(s.ctx, ListBudgetsInput{})
	s.Equal(domainerror.ErrCodeMissingBudgetFields, s.code(err))
}
