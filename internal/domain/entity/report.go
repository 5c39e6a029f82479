// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportingPeriod is an inclusive calendar date range used to scope
// aggregation. Comparisons are date-only; time-of-day is ignored.
type ReportingPeriod struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the given date falls inside the period,
// inclusive on both ends.
func (p ReportingPeriod) Contains(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(p.Start)) && !d.After(truncateToDate(p.End))
}

// Label returns a human-readable quarter label like "Q1 2024".
// Periods that are not aligned to a calendar quarter fall back to a
// plain date-range label.
func (p ReportingPeriod) Label() string {
	quarter := (int(p.Start.Month())-1)/3 + 1
	alignedStart := time.Date(p.Start.Year(), time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, p.Start.Location())
	alignedEnd := alignedStart.AddDate(0, 3, -1)
	if truncateToDate(p.Start).Equal(alignedStart) && truncateToDate(p.End).Equal(truncateToDate(alignedEnd)) {
		return fmt.Sprintf("Q%d %d", quarter, p.Start.Year())
	}
	return fmt.Sprintf("%s to %s", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UserSummary is one creator's aggregated financials for a reporting
// period. Computed fresh per run; never persisted.
type UserSummary struct {
	User             *User
	Period           ReportingPeriod
	TotalRevenue     decimal.Decimal
	TotalFees        decimal.Decimal
	NetRevenue       decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetProfit        decimal.Decimal
	TransactionCount int
	ExpenseCount     int
}

// HasActivity reports whether the summary covers any ledger records.
func (s *UserSummary) HasActivity() bool {
	return s.TransactionCount > 0 || s.ExpenseCount > 0
}

// DispatchStatus classifies the outcome of one user's report dispatch.
type DispatchStatus string

const (
	DispatchSent    DispatchStatus = "sent"
	DispatchSkipped DispatchStatus = "skipped"
	DispatchFailed  DispatchStatus = "failed"
)

// DispatchResult records the outcome of processing one user in a run.
type DispatchResult struct {
	UserID uuid.UUID
	Status DispatchStatus
	Reason string
}

// ReportRunError is one per-user failure surfaced in a run result.
type ReportRunError struct {
	UserID  uuid.UUID
	Message string
}

// ReportRunResult is the aggregate outcome of one report run.
// Processed always equals Sent + Skipped + Failed.
type ReportRunResult struct {
	Period    ReportingPeriod
	Processed int
	Sent      int
	Skipped   int
	Failed    int
	Errors    []ReportRunError
	Cancelled bool
}

// Record tallies a dispatch result into the run result.
func (r *ReportRunResult) Record(result DispatchResult) {
	r.Processed++
	switch result.Status {
	case DispatchSent:
		r.Sent++
	case DispatchSkipped:
		r.Skipped++
	case DispatchFailed:
		r.Failed++
		r.Errors = append(r.Errors, ReportRunError{
			UserID:  result.UserID,
			Message: result.Reason,
		})
	}
}
