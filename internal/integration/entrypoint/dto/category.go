package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Type        string `json:"type" binding:"required,oneof=income expense savings"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
	IsHidden    *bool   `json:"is_hidden,omitempty"`
}

// ListCategoriesQuery filters the category list.
type ListCategoriesQuery struct {
	Type          string `form:"type" binding:"omitempty,oneof=income expense savings"`
	IncludeHidden bool   `form:"include_hidden"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	IsHidden    bool      `json:"is_hidden"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID.String(),
		Name:        cat.Name,
		Type:        string(cat.Type),
		Icon:        cat.Icon,
		Description: cat.Description,
		IsHidden:    cat.IsHidden,
		CreatedAt:   cat.CreatedAt,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return CategoryListResponse{Categories: out}
}
