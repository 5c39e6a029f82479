// Package report contains the quarterly report engine use cases.
package report

import (
	"errors"
	"testing"
	"time"

	"github.com/creator-ledger/backend/internal/domain/entity"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestPreviousQuarter(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid Q2 yields Q1 of same year",
			now:       date(2024, time.May, 15),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.March, 31),
		},
		{
			name:      "early Q1 yields Q4 of prior year",
			now:       date(2024, time.January, 10),
			wantStart: date(2023, time.October, 1),
			wantEnd:   date(2023, time.December, 31),
		},
		{
			name:      "Q3 yields Q2",
			now:       date(2024, time.August, 1),
			wantStart: date(2024, time.April, 1),
			wantEnd:   date(2024, time.June, 30),
		},
		{
			name:      "Q4 yields Q3",
			now:       date(2024, time.December, 31),
			wantStart: date(2024, time.July, 1),
			wantEnd:   date(2024, time.September, 30),
		},
		{
			name:      "first day of a quarter still yields the completed quarter",
			now:       date(2024, time.April, 1),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.March, 31),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			period := PreviousQuarter(tc.now)

			if !period.Start.Equal(tc.wantStart) {
				t.Errorf("start: expected %v, got %v", tc.wantStart, period.Start)
			}
			if !period.End.Equal(tc.wantEnd) {
				t.Errorf("end: expected %v, got %v", tc.wantEnd, period.End)
			}
		})
	}
}

func TestReportingPeriodContains(t *testing.T) {
	period := entity.ReportingPeriod{
		Start: date(2024, time.January, 1),
		End:   date(2024, time.March, 31),
	}

	t.Run("both ends are inclusive", func(t *testing.T) {
		if !period.Contains(date(2024, time.January, 1)) {
			t.Error("expected start date to be inside the period")
		}
		if !period.Contains(date(2024, time.March, 31)) {
			t.Error("expected end date to be inside the period")
		}
	})

	t.Run("adjacent dates are outside", func(t *testing.T) {
		if period.Contains(date(2023, time.December, 31)) {
			t.Error("expected day before start to be outside the period")
		}
		if period.Contains(date(2024, time.April, 1)) {
			t.Error("expected day after end to be outside the period")
		}
	})

	t.Run("comparison ignores time of day", func(t *testing.T) {
		lastMoment := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
		if !period.Contains(lastMoment) {
			t.Error("expected end-of-day timestamp on the last day to be inside the period")
		}
	})
}

func TestReportingPeriodLabel(t *testing.T) {
	t.Run("quarter-aligned period", func(t *testing.T) {
		period := entity.ReportingPeriod{
			Start: date(2024, time.January, 1),
			End:   date(2024, time.March, 31),
		}
		if got := period.Label(); got != "Q1 2024" {
			t.Errorf("expected label %q, got %q", "Q1 2024", got)
		}
	})

	t.Run("unaligned period falls back to date range", func(t *testing.T) {
		period := entity.ReportingPeriod{
			Start: date(2024, time.February, 1),
			End:   date(2024, time.February, 29),
		}
		if got := period.Label(); got != "2024-02-01 to 2024-02-29" {
			t.Errorf("expected date-range label, got %q", got)
		}
	})
}

func TestValidatePeriod(t *testing.T) {
	t.Run("valid period passes", func(t *testing.T) {
		period := entity.ReportingPeriod{
			Start: date(2024, time.January, 1),
			End:   date(2024, time.March, 31),
		}
		if err := ValidatePeriod(period); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("single-day period passes", func(t *testing.T) {
		period := entity.ReportingPeriod{
			Start: date(2024, time.January, 1),
			End:   date(2024, time.January, 1),
		}
		if err := ValidatePeriod(period); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("end before start fails", func(t *testing.T) {
		period := entity.ReportingPeriod{
			Start: date(2024, time.March, 31),
			End:   date(2024, time.January, 1),
		}
		err := ValidatePeriod(period)
		if !errors.Is(err, domainerror.ErrInvalidPeriod) {
			t.Errorf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("zero dates fail", func(t *testing.T) {
		err := ValidatePeriod(entity.ReportingPeriod{})
		if !errors.Is(err, domainerror.ErrInvalidPeriod) {
			t.Errorf("expected ErrInvalidPeriod, got %v", err)
		}
	})
}
