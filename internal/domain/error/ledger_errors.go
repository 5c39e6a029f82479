// Package error defines domain-specific errors for the Creator Ledger application.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrExpenseNotFound is returned when an expense does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidAmount is returned when an amount fails validation.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDateRange is returned when end date precedes start date.
	ErrInvalidDateRange = errors.New("end date must not precede start date")

	// ErrMissingDateRange is returned when a required date range is absent.
	ErrMissingDateRange = errors.New("start and end dates are required")

	// ErrInvalidPlatform is returned when a platform value is not recognized.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrDescriptionTooLong is returned when a description exceeds the limit.
	ErrDescriptionTooLong = errors.New("description too long")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LEDGER-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount      LedgerErrorCode = "LEDGER-010001"
	ErrCodeInvalidDateRange   LedgerErrorCode = "LEDGER-010002"
	ErrCodeMissingDateRange   LedgerErrorCode = "LEDGER-010003"
	ErrCodeInvalidPlatform    LedgerErrorCode = "LEDGER-010004"
	ErrCodeDescriptionTooLong LedgerErrorCode = "LEDGER-010005"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound LedgerErrorCode = "LEDGER-020001"
	ErrCodeExpenseNotFound     LedgerErrorCode = "LEDGER-020002"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
