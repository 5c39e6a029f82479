// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/creator-ledger/backend/internal/domain/entity"

// TriggerReportRequest represents the request body for a report run.
// When the period is omitted the run covers the previous calendar quarter.
type TriggerReportRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// ReportErrorDetail represents one per-user failure in the run summary.
type ReportErrorDetail struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ReportRunResponse represents the summary of a completed report run.
type ReportRunResponse struct {
	PeriodStart string              `json:"period_start"`
	PeriodEnd   string              `json:"period_end"`
	PeriodLabel string              `json:"period_label"`
	Processed   int                 `json:"processed"`
	Sent        int                 `json:"sent"`
	Skipped     int                 `json:"skipped"`
	Failed      int                 `json:"failed"`
	Cancelled   bool                `json:"cancelled"`
	Errors      []ReportErrorDetail `json:"errors,omitempty"`
}

// ToReportRunResponse converts a run result to a response DTO.
func ToReportRunResponse(result *entity.ReportRunResult) ReportRunResponse {
	errors := make([]ReportErrorDetail, len(result.Errors))
	for i, runErr := range result.Errors {
		errors[i] = ReportErrorDetail{
			UserID:  runErr.UserID.String(),
			Message: runErr.Message,
		}
	}

	return ReportRunResponse{
		PeriodStart: result.Period.Start.Format("2006-01-02"),
		PeriodEnd:   result.Period.End.Format("2006-01-02"),
		PeriodLabel: result.Period.Label(),
		Processed:   result.Processed,
		Sent:        result.Sent,
		Skipped:     result.Skipped,
		Failed:      result.Failed,
		Cancelled:   result.Cancelled,
		Errors:      errors,
	}
}
