package category

import (
	"context"
	"fmt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Type          *entity.CategoryType
	IncludeHidden bool
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase lists categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute lists the categories, optionally of one type.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	var (
		categories []*entity.Category
		err        error
	)
	if input.Type != nil {
		if !entity.IsValidCategoryType(*input.Type) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidCategoryType,
				"type must be 'income', 'expense' or 'savings'",
				domainerror.ErrInvalidCategoryType,
			)
		}
		categories, err = uc.categoryRepo.FindByType(ctx, *input.Type)
	} else {
		categories, err = uc.categoryRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if input.IncludeHidden {
		return &ListCategoriesOutput{Categories: categories}, nil
	}
	visible := make([]*entity.Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsHidden {
			visible = append(visible, c)
		}
	}
	return &ListCategoriesOutput{Categories: visible}, nil
}
