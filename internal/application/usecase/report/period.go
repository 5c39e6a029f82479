// Package report contains the quarterly report engine use cases.
package report

import (
	"time"

	"github.com/creator-ledger/backend/internal/domain/entity"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
)

// PreviousQuarter returns the most recently completed calendar quarter
// relative to the given date. Quarters are [Jan1,Mar31], [Apr1,Jun30],
// [Jul1,Sep30], [Oct1,Dec31], inclusive on both ends. Invoked in April,
// the period is Q1 of the same year; invoked in January, it is Q4 of the
// prior year.
func PreviousQuarter(now time.Time) entity.ReportingPeriod {
	quarter := (int(now.Month()) - 1) / 3
	currentStart := time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC)

	start := currentStart.AddDate(0, -3, 0)
	end := currentStart.AddDate(0, 0, -1)

	return entity.ReportingPeriod{Start: start, End: end}
}

// ValidatePeriod checks an explicit caller-supplied period. A malformed
// period fails the run before any user processing.
func ValidatePeriod(period entity.ReportingPeriod) error {
	if period.Start.IsZero() || period.End.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriod,
			"period start and end are required",
			domainerror.ErrInvalidPeriod,
		)
	}

	if period.End.Before(period.Start) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriod,
			"period end must not precede start",
			domainerror.ErrInvalidPeriod,
		)
	}

	return nil
}
