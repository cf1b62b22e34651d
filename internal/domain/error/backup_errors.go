package error

import "errors"

// Backup domain errors.
var (
	// ErrUnsupportedExportFormat is returned for an export format other than json, csv or xlsx.
	ErrUnsupportedExportFormat = errors.New("unsupported export format")

	// ErrInvalidBackup is returned when an import payload is malformed.
	ErrInvalidBackup = errors.New("invalid backup")

	// ErrUnsupportedBackupVersion is returned when the backup meta version is unknown.
	ErrUnsupportedBackupVersion = errors.New("unsupported backup version")

	// ErrBackupDanglingReference is returned when a backup budget references a missing category.
	ErrBackupDanglingReference = errors.New("backup references unknown record")

	// ErrTooManyRequests is returned when a client exceeds the configured rate limit.
	ErrTooManyRequests = errors.New("too many requests")
)

// BackupErrorCode defines error codes for backup errors.
// Format: BKP-XXYYYY where XX is category and YYYY is specific error.
type BackupErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeUnsupportedExportFormat  BackupErrorCode = "BKP-010001"
	ErrCodeInvalidBackup            BackupErrorCode = "BKP-010002"
	ErrCodeUnsupportedBackupVersion BackupErrorCode = "BKP-010003"
	ErrCodeBackupDanglingReference  BackupErrorCode = "BKP-010004"

	// Rate limit errors (02XXXX)
	ErrCodeTooManyRequests BackupErrorCode = "BKP-020001"
)

// BackupError represents a backup error with code and message.
type BackupError struct {
	Code    BackupErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BackupError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BackupError) Unwrap() error {
	return e.Err
}

// NewBackupError creates a new BackupError with the given code and message.
func NewBackupError(code BackupErrorCode, message string, err error) *BackupError {
	return &BackupError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
