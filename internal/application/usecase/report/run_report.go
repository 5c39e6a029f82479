// Package report contains the quarterly report engine use cases.
package report

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
)

const defaultConcurrency = 4

// Policy configures run-level behavior of the report engine.
type Policy struct {
	// SkipZeroActivity skips dispatch for users with no ledger records in
	// the period. Default is to send every user a report; a zero-activity
	// quarter is still reportable.
	SkipZeroActivity bool

	// Concurrency bounds the per-user worker fan-out.
	Concurrency int
}

// RunReportInput represents the input for a report run.
type RunReportInput struct {
	// Period overrides the derived period when set. Nil means the most
	// recently completed calendar quarter relative to the current date.
	Period *entity.ReportingPeriod
}

// RunQuarterlyReportUseCase aggregates every user's quarter and dispatches
// one report each, isolating per-user failures from each other. The use
// case holds no state across runs; re-running the same period re-sends.
type RunQuarterlyReportUseCase struct {
	users    adapter.UserDirectory
	ledger   adapter.LedgerQuery
	notifier adapter.Notifier
	policy   Policy
	now      func() time.Time
}

// NewRunQuarterlyReportUseCase creates a new RunQuarterlyReportUseCase instance.
func NewRunQuarterlyReportUseCase(
	users adapter.UserDirectory,
	ledger adapter.LedgerQuery,
	notifier adapter.Notifier,
	policy Policy,
) *RunQuarterlyReportUseCase {
	return &RunQuarterlyReportUseCase{
		users:    users,
		ledger:   ledger,
		notifier: notifier,
		policy:   policy,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests to pin quarter derivation.
func (uc *RunQuarterlyReportUseCase) WithClock(now func() time.Time) *RunQuarterlyReportUseCase {
	uc.now = now
	return uc
}

// Execute runs one report pass over all users and returns the aggregate
// result. Only an unreadable user list or an invalid explicit period fail
// the run; every per-user failure is recorded and processing continues.
func (uc *RunQuarterlyReportUseCase) Execute(ctx context.Context, input RunReportInput) (*entity.ReportRunResult, error) {
	period, err := uc.resolvePeriod(input)
	if err != nil {
		return nil, err
	}

	users, err := uc.users.ListUsers(ctx)
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeUserListUnavailable,
			"failed to list users for report run",
			err,
		)
	}

	slog.Info("Report run started",
		"period_start", period.Start.Format("2006-01-02"),
		"period_end", period.End.Format("2006-01-02"),
		"users", len(users),
	)

	result := uc.dispatchAll(ctx, users, period)

	slog.Info("Report run finished",
		"processed", result.Processed,
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"cancelled", result.Cancelled,
	)

	return result, nil
}

// resolvePeriod validates the explicit period or derives the previous quarter.
func (uc *RunQuarterlyReportUseCase) resolvePeriod(input RunReportInput) (entity.ReportingPeriod, error) {
	if input.Period != nil {
		if err := ValidatePeriod(*input.Period); err != nil {
			return entity.ReportingPeriod{}, err
		}
		return *input.Period, nil
	}
	return PreviousQuarter(uc.now().UTC()), nil
}

// dispatchAll fans out per-user work over a bounded worker pool and reduces
// the dispatch results into a single run result. Workers never share
// counters; a single reducer tallies, so processed = sent + skipped + failed
// holds under any interleaving.
func (uc *RunQuarterlyReportUseCase) dispatchAll(
	ctx context.Context,
	users []*entity.User,
	period entity.ReportingPeriod,
) *entity.ReportRunResult {
	workers := uc.policy.Concurrency
	if workers < 1 {
		workers = defaultConcurrency
	}
	if workers > len(users) && len(users) > 0 {
		workers = len(users)
	}

	jobs := make(chan *entity.User)
	results := make(chan entity.DispatchResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range jobs {
				// Stop picking up work once the run is cancelled;
				// in-flight items have already produced a result.
				if ctx.Err() != nil {
					continue
				}
				results <- uc.processUser(ctx, user, period)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, user := range users {
			select {
			case <-ctx.Done():
				return
			case jobs <- user:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &entity.ReportRunResult{Period: period}
	for dispatch := range results {
		result.Record(dispatch)
	}

	if ctx.Err() != nil {
		result.Cancelled = true
	}

	return result
}

// processUser runs the fetch-summarize-render-send pipeline for one user.
// Every failure is converted into a Failed dispatch result; nothing
// propagates past this boundary.
func (uc *RunQuarterlyReportUseCase) processUser(
	ctx context.Context,
	user *entity.User,
	period entity.ReportingPeriod,
) entity.DispatchResult {
	logger := slog.With("user_id", user.ID)

	transactions, err := uc.ledger.GetTransactions(ctx, user.ID, period.Start, period.End)
	if err != nil {
		logger.Error("Failed to fetch transactions", "error", err)
		return uc.failed(user, domainerror.NewReportError(
			domainerror.ErrCodeLedgerUnavailable,
			"failed to fetch transactions",
			err,
		))
	}

	expenses, err := uc.ledger.GetExpenses(ctx, user.ID, period.Start, period.End)
	if err != nil {
		logger.Error("Failed to fetch expenses", "error", err)
		return uc.failed(user, domainerror.NewReportError(
			domainerror.ErrCodeLedgerUnavailable,
			"failed to fetch expenses",
			err,
		))
	}

	summary := Summarize(user, transactions, expenses, period)

	if uc.policy.SkipZeroActivity && !summary.HasActivity() {
		logger.Debug("Skipping zero-activity user")
		return entity.DispatchResult{
			UserID: user.ID,
			Status: entity.DispatchSkipped,
			Reason: "no activity in period",
		}
	}

	subject, body := RenderReport(summary)

	if err := uc.notifier.Send(ctx, adapter.SendReportInput{
		To:      user.Email,
		Name:    user.DisplayName(),
		Subject: subject,
		Body:    body,
	}); err != nil {
		logger.Error("Failed to dispatch report", "error", err)
		return uc.failed(user, domainerror.NewReportError(
			domainerror.ErrCodeDispatchFailed,
			"failed to dispatch report",
			err,
		))
	}

	logger.Info("Report dispatched",
		"net_profit", summary.NetProfit.StringFixed(2),
		"transactions", summary.TransactionCount,
		"expenses", summary.ExpenseCount,
	)

	return entity.DispatchResult{
		UserID: user.ID,
		Status: entity.DispatchSent,
	}
}

func (uc *RunQuarterlyReportUseCase) failed(user *entity.User, err error) entity.DispatchResult {
	return entity.DispatchResult{
		UserID: user.ID,
		Status: entity.DispatchFailed,
		Reason: err.Error(),
	}
}
