package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/analytics"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// TransactionOutput is a transaction with its resolved category.
type TransactionOutput struct {
	Transaction *entity.Transaction
	Category    *entity.Category
}

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	// Month optionally restricts the list to one YYYY-MM period.
	Month string
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
}

// ListTransactionsUseCase lists transactions newest first.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, categoryRepo adapter.CategoryRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute lists the transactions.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	var period *entity.Period
	if month := strings.TrimSpace(input.Month); month != "" {
		p, err := entity.ParsePeriod(month)
		if err != nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidPeriodFilter,
				"month must be formatted as YYYY-MM",
				domainerror.ErrInvalidTransactionDate,
			)
		}
		period = &p
	}

	transactions, err := uc.transactionRepo.List(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	output := make([]*TransactionOutput, 0, len(transactions))
	for _, t := range transactions {
		category, ok := byID[t.CategoryID]
		if !ok {
			category = analytics.Uncategorized(t.CategoryID)
		}
		output = append(output, &TransactionOutput{Transaction: t, Category: category})
	}

	return &ListTransactionsOutput{Transactions: output}, nil
}
