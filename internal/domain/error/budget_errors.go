package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetCategoryNotFound is returned when a budget references a missing category.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrInvalidBudgetMonth is returned when the budget month is not YYYY-MM.
	ErrInvalidBudgetMonth = errors.New("invalid budget month")

	// ErrInvalidBudgetAmount is returned when the amount cannot be parsed.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidBudgetMonth     BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidBudgetAmount    BudgetErrorCode = "BGT-010003"
	ErrCodeMissingBudgetFields    BudgetErrorCode = "BGT-010004"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
