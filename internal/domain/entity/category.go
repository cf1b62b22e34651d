package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType is the intended use of a category.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeSavings CategoryType = "savings"
)

// DefaultCategoryIcon is used when a category is created without an icon.
const DefaultCategoryIcon = "🏷️"

// UncategorizedName labels spend whose category no longer exists.
const UncategorizedName = "Uncategorized"

// Category groups transactions. Name is unique across the ledger.
type Category struct {
	ID          uuid.UUID
	Name        string
	Type        CategoryType
	Icon        string
	Description string
	IsHidden    bool
	CreatedAt   time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(name string, categoryType CategoryType, icon, description string) *Category {
	if icon == "" {
		icon = DefaultCategoryIcon
	}
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Type:        categoryType,
		Icon:        icon,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsValidCategoryType reports whether t is a known category type.
func IsValidCategoryType(t CategoryType) bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense || t == CategoryTypeSavings
}

// DefaultCategories returns the category set a fresh ledger starts with.
func DefaultCategories() []*Category {
	seed := []struct {
		name string
		kind CategoryType
		icon string
	}{
		{"Salary", CategoryTypeIncome, "💼"},
		{"Freelance", CategoryTypeIncome, "💻"},
		{"Rent/Mortgage", CategoryTypeExpense, "🏠"},
		{"Groceries", CategoryTypeExpense, "🛒"},
		{"Utilities", CategoryTypeExpense, "💡"},
		{"Transport", CategoryTypeExpense, "🚗"},
		{"Dining Out", CategoryTypeExpense, "🍽️"},
		{"Health", CategoryTypeExpense, "💊"},
		{"Shopping", CategoryTypeExpense, "🛍️"},
		{"Entertainment", CategoryTypeExpense, "🎬"},
		{"Education", CategoryTypeExpense, "📚"},
		{"Savings", CategoryTypeSavings, "🏦"},
		{"Family", CategoryTypeExpense, "👨‍👩‍👧"},
		{"Charity", CategoryTypeExpense, "❤️"},
	}

	categories := make([]*Category, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, NewCategory(s.name, s.kind, s.icon, ""))
	}
	return categories
}
