package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidGoalPriority is returned when the priority is outside 1..3.
	ErrInvalidGoalPriority = errors.New("invalid goal priority")

	// ErrInvalidGoalDeadline is returned when the deadline is not a YYYY-MM-DD day.
	ErrInvalidGoalDeadline = errors.New("invalid goal deadline")

	// ErrInvalidFundAmount is returned when a goal is funded with zero or a negative amount.
	ErrInvalidFundAmount = errors.New("invalid fund amount")

	// ErrGoalAlreadyCompleted is returned when funding or completing a completed goal.
	ErrGoalAlreadyCompleted = errors.New("goal already completed")

	// ErrMissingGoalName is returned when a goal has no name.
	ErrMissingGoalName = errors.New("goal name is required")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound         GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetAmount  GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalPriority  GoalErrorCode = "GOL-010004"
	ErrCodeInvalidGoalDeadline  GoalErrorCode = "GOL-010005"
	ErrCodeInvalidFundAmount    GoalErrorCode = "GOL-010006"
	ErrCodeGoalAlreadyCompleted GoalErrorCode = "GOL-010007"
	ErrCodeMissingGoalFields    GoalErrorCode = "GOL-010008"
	ErrCodeInvalidGoalFilter    GoalErrorCode = "GOL-010009"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
