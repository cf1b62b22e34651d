package error

import "errors"

// Analytics domain errors.
var (
	// ErrMissingPeriod is returned when an aggregation is requested without a period.
	ErrMissingPeriod = errors.New("period is required")

	// ErrInvalidPeriod is returned when the period is not YYYY-MM.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidReferenceDate is returned when as_of is not YYYY-MM-DD.
	ErrInvalidReferenceDate = errors.New("invalid reference date")

	// ErrInvalidSalary is returned when the stored or submitted salary is not a non-negative number.
	ErrInvalidSalary = errors.New("invalid salary")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingPeriod        AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidPeriod        AnalyticsErrorCode = "ANL-010002"
	ErrCodeInvalidReferenceDate AnalyticsErrorCode = "ANL-010003"
	ErrCodeInvalidSalary        AnalyticsErrorCode = "ANL-010004"

	// Internal errors (99XXXX)
	ErrCodeAnalyticsInternalError AnalyticsErrorCode = "ANL-990001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
