// Package error defines domain-specific errors for the Creator Ledger application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidPeriod is returned when an explicit reporting period is malformed.
	ErrInvalidPeriod = errors.New("invalid reporting period")

	// ErrUserListUnavailable is returned when the user directory cannot be read.
	// This aborts the whole run; there is no partial mode without a user list.
	ErrUserListUnavailable = errors.New("user list unavailable")

	// ErrLedgerUnavailable is returned when ledger data cannot be fetched for a user.
	ErrLedgerUnavailable = errors.New("ledger data unavailable")

	// ErrDispatchFailed is returned when a report notification cannot be delivered.
	ErrDispatchFailed = errors.New("report dispatch failed")

	// ErrRunInProgress is returned when a run for the same period already holds the lock.
	ErrRunInProgress = errors.New("report run already in progress")
)

// ReportErrorCode defines error codes for report errors.
// Format: REPORT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeInvalidPeriod ReportErrorCode = "REPORT-010001"

	// Fatal run errors (02XXXX)
	ErrCodeUserListUnavailable ReportErrorCode = "REPORT-020001"
	ErrCodeRunInProgress       ReportErrorCode = "REPORT-020002"

	// Per-user errors (03XXXX)
	ErrCodeLedgerUnavailable ReportErrorCode = "REPORT-030001"
	ErrCodeDispatchFailed    ReportErrorCode = "REPORT-030002"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
