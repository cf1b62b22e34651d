// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Date        time.Time
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  uuid.UUID
	GoalID      *uuid.UUID
	Description string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	goalRepo        adapter.GoalRepository
	metrics         adapter.MetricsRecorder
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	goalRepo adapter.GoalRepository,
	metrics adapter.MetricsRecorder,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		goalRepo:        goalRepo,
		metrics:         metrics,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate description length
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	// Amounts are stored unsigned; direction comes from the type
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required (YYYY-MM-DD)",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	// Build the kind; a transfer without a goal is rejected here
	kind, err := entity.KindFor(input.Type, input.GoalID)
	if err != nil {
		if errors.Is(err, entity.ErrTransferWithoutGoal) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransferRequiresGoal,
				"a transfer must reference a goal",
				domainerror.ErrTransferRequiresGoal,
			)
		}
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income', 'expense' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	// Validate category exists
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	// Validate linked goal exists
	if goalID := kind.Goal(); goalID != nil {
		if _, err := uc.goalRepo.FindByID(ctx, *goalID); err != nil {
			if errors.Is(err, domainerror.ErrGoalNotFound) {
				return nil, domainerror.NewTransactionError(
					domainerror.ErrCodeTxnGoalNotFound,
					"goal not found",
					domainerror.ErrGoalNotFoundForTransaction,
				)
			}
			return nil, fmt.Errorf("failed to find goal: %w", err)
		}
	}

	transaction := entity.NewTransaction(input.Date, input.Amount, kind, category.ID, input.Description)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.CountLedgerWrite("transaction", "create")
	}

	return &CreateTransactionOutput{
		Transaction: &TransactionOutput{
			Transaction: transaction,
			Category:    category,
		},
	}, nil
}
