// Package report contains the quarterly report engine use cases.
package report

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
)

// fakeDirectory is an in-memory UserDirectory.
type fakeDirectory struct {
	users []*entity.User
	err   error
}

func (f *fakeDirectory) ListUsers(ctx context.Context) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

// fakeLedger is an in-memory LedgerQuery with per-user data and failures.
type fakeLedger struct {
	mu           sync.Mutex
	transactions map[uuid.UUID][]*entity.Transaction
	expenses     map[uuid.UUID][]*entity.Expense
	failFor      map[uuid.UUID]error
	calls        int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		transactions: make(map[uuid.UUID][]*entity.Transaction),
		expenses:     make(map[uuid.UUID][]*entity.Expense),
		failFor:      make(map[uuid.UUID]error),
	}
}

func (f *fakeLedger) GetTransactions(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.failFor[userID]; ok {
		return nil, err
	}
	return f.transactions[userID], nil
}

func (f *fakeLedger) GetExpenses(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[userID]; ok {
		return nil, err
	}
	return f.expenses[userID], nil
}

// fakeNotifier records dispatches and can fail for selected recipients.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []adapter.SendReportInput
	failFor map[string]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[string]error)}
}

func (f *fakeNotifier) Send(ctx context.Context, input adapter.SendReportInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[input.To]; ok {
		return err
	}
	f.sent = append(f.sent, input)
	return nil
}

func (f *fakeNotifier) sentTo() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	bodies := make(map[string]string, len(f.sent))
	for _, s := range f.sent {
		bodies[s.To] = s.Body
	}
	return bodies
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func q1Period() *entity.ReportingPeriod {
	p := testPeriod()
	return &p
}

func buildUseCase(dir *fakeDirectory, ledger *fakeLedger, notifier *fakeNotifier, policy Policy) *RunQuarterlyReportUseCase {
	return NewRunQuarterlyReportUseCase(dir, ledger, notifier, policy).
		WithClock(fixedClock(date(2024, time.May, 15)))
}

func TestRunQuarterlyReport_AllUsersProcessed(t *testing.T) {
	users := make([]*entity.User, 5)
	ledger := newFakeLedger()
	for i := range users {
		users[i] = testUser(uuid.NewString() + "@example.com")
		ledger.transactions[users[i].ID] = []*entity.Transaction{tx(users[i], "100", "5", 1)}
	}
	notifier := newFakeNotifier()
	uc := buildUseCase(&fakeDirectory{users: users}, ledger, notifier, Policy{Concurrency: 3})

	result, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Processed != len(users) {
		t.Errorf("expected processed=%d, got %d", len(users), result.Processed)
	}
	if result.Sent != len(users) {
		t.Errorf("expected sent=%d, got %d", len(users), result.Sent)
	}
	if result.Failed != 0 || result.Skipped != 0 {
		t.Errorf("expected no failures or skips, got failed=%d skipped=%d", result.Failed, result.Skipped)
	}
	if result.Processed != result.Sent+result.Skipped+result.Failed {
		t.Error("processed != sent + skipped + failed")
	}
	if len(notifier.sentTo()) != len(users) {
		t.Errorf("expected %d dispatched emails, got %d", len(users), len(notifier.sentTo()))
	}
}

func TestRunQuarterlyReport_PerUserFailureIsolation(t *testing.T) {
	users := make([]*entity.User, 4)
	ledger := newFakeLedger()
	for i := range users {
		users[i] = testUser(uuid.NewString() + "@example.com")
	}
	ledger.failFor[users[1].ID] = errors.New("ledger timeout")

	notifier := newFakeNotifier()
	uc := buildUseCase(&fakeDirectory{users: users}, ledger, notifier, Policy{Concurrency: 2})

	result, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Processed != 4 {
		t.Errorf("expected processed=4, got %d", result.Processed)
	}
	if result.Failed != 1 {
		t.Errorf("expected failed=1, got %d", result.Failed)
	}
	if result.Sent != 3 {
		t.Errorf("expected sent=3, got %d", result.Sent)
	}

	// Exactly one error entry, for the failing user.
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error entry, got %d", len(result.Errors))
	}
	if result.Errors[0].UserID != users[1].ID {
		t.Errorf("error entry attributed to wrong user: %v", result.Errors[0].UserID)
	}
	if result.Errors[0].Message == "" {
		t.Error("expected a non-empty failure message")
	}
}

func TestRunQuarterlyReport_NotifierFailureRecordedPerUser(t *testing.T) {
	good := testUser("good@example.com")
	bad := testUser("bad@example.com")
	ledger := newFakeLedger()

	notifier := newFakeNotifier()
	notifier.failFor[bad.Email] = errors.New("smtp 550")

	uc := buildUseCase(&fakeDirectory{users: []*entity.User{good, bad}}, ledger, notifier, Policy{})

	result, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Sent != 1 || result.Failed != 1 {
		t.Errorf("expected sent=1 failed=1, got sent=%d failed=%d", result.Sent, result.Failed)
	}
	if _, ok := notifier.sentTo()[good.Email]; !ok {
		t.Error("expected the healthy user's report to be dispatched")
	}
}

func TestRunQuarterlyReport_ZeroActivityPolicy(t *testing.T) {
	user := testUser("quiet@example.com")
	ledger := newFakeLedger()

	t.Run("send-always is the default", func(t *testing.T) {
		notifier := newFakeNotifier()
		uc := buildUseCase(&fakeDirectory{users: []*entity.User{user}}, ledger, notifier, Policy{})

		result, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Sent != 1 || result.Skipped != 0 {
			t.Errorf("expected sent=1 skipped=0, got sent=%d skipped=%d", result.Sent, result.Skipped)
		}

		body := notifier.sentTo()[user.Email]
		if body == "" {
			t.Fatal("expected a dispatched body")
		}
		for _, want := range []string{"Total revenue:  0.00", "Net profit:     0.00"} {
			if !containsLine(body, want) {
				t.Errorf("all-zero body missing %q", want)
			}
		}
	})

	t.Run("skip-zero-activity policy skips", func(t *testing.T) {
		notifier := newFakeNotifier()
		uc := buildUseCase(&fakeDirectory{users: []*entity.User{user}}, ledger, notifier, Policy{SkipZeroActivity: true})

		result, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Skipped != 1 || result.Sent != 0 {
			t.Errorf("expected skipped=1 sent=0, got skipped=%d sent=%d", result.Skipped, result.Sent)
		}
		if len(notifier.sentTo()) != 0 {
			t.Error("expected no dispatches for a skipped user")
		}
	})

	t.Run("skip policy still sends to active users", func(t *testing.T) {
		active := testUser("active@example.com")
		activeLedger := newFakeLedger()
		activeLedger.transactions[active.ID] = []*entity.Transaction{tx(active, "10", "1", 1)}

		notifier := newFakeNotifier()
		uc := buildUseCase(
			&fakeDirectory{users: []*entity.User{user, active}},
			activeLedger,
			notifier,
			Policy{SkipZeroActivity: true},
		)

		result, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Sent != 1 || result.Skipped != 1 {
			t.Errorf("expected sent=1 skipped=1, got sent=%d skipped=%d", result.Sent, result.Skipped)
		}
	})
}

func TestRunQuarterlyReport_FatalErrors(t *testing.T) {
	t.Run("user list failure aborts the run", func(t *testing.T) {
		uc := buildUseCase(
			&fakeDirectory{err: errors.New("directory down")},
			newFakeLedger(),
			newFakeNotifier(),
			Policy{},
		)

		result, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()})
		if result != nil {
			t.Error("expected no partial result on a fatal error")
		}
		if !errors.Is(err, domainerror.ErrUserListUnavailable) {
			var reportErr *domainerror.ReportError
			if !errors.As(err, &reportErr) || reportErr.Code != domainerror.ErrCodeUserListUnavailable {
				t.Errorf("expected user-list error, got %v", err)
			}
		}
	})

	t.Run("invalid explicit period fails before any user work", func(t *testing.T) {
		ledger := newFakeLedger()
		uc := buildUseCase(
			&fakeDirectory{users: []*entity.User{testUser("u@example.com")}},
			ledger,
			newFakeNotifier(),
			Policy{},
		)

		badPeriod := &entity.ReportingPeriod{
			Start: date(2024, time.March, 31),
			End:   date(2024, time.January, 1),
		}
		_, err := uc.Execute(context.Background(), RunReportInput{Period: badPeriod})
		if !errors.Is(err, domainerror.ErrInvalidPeriod) {
			t.Errorf("expected ErrInvalidPeriod, got %v", err)
		}
		if ledger.calls != 0 {
			t.Error("expected no ledger calls for an invalid period")
		}
	})
}

func TestRunQuarterlyReport_DerivesPeriodFromClock(t *testing.T) {
	user := testUser("u@example.com")
	notifier := newFakeNotifier()
	uc := buildUseCase(&fakeDirectory{users: []*entity.User{user}}, newFakeLedger(), notifier, Policy{})

	result, err := uc.Execute(context.Background(), RunReportInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Clock is pinned to 2024-05-15, so the derived period is Q1 2024.
	if !result.Period.Start.Equal(date(2024, time.January, 1)) ||
		!result.Period.End.Equal(date(2024, time.March, 31)) {
		t.Errorf("unexpected derived period: %v - %v", result.Period.Start, result.Period.End)
	}
}

func TestRunQuarterlyReport_Cancellation(t *testing.T) {
	users := make([]*entity.User, 8)
	for i := range users {
		users[i] = testUser(uuid.NewString() + "@example.com")
	}
	notifier := newFakeNotifier()
	uc := buildUseCase(&fakeDirectory{users: users}, newFakeLedger(), notifier, Policy{Concurrency: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := uc.Execute(ctx, RunReportInput{Period: q1Period()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !result.Cancelled {
		t.Error("expected the run result to be marked cancelled")
	}
	if result.Processed != result.Sent+result.Skipped+result.Failed {
		t.Error("processed != sent + skipped + failed under cancellation")
	}
	if len(notifier.sentTo()) != 0 {
		t.Error("expected no new dispatches after cancellation")
	}
}

func TestRunQuarterlyReport_IdempotentComputation(t *testing.T) {
	user := testUser("stable@example.com")
	ledger := newFakeLedger()
	ledger.transactions[user.ID] = []*entity.Transaction{
		tx(user, "100", "5", 1),
		tx(user, "50", "0", 15),
	}
	ledger.expenses[user.ID] = []*entity.Expense{exp(user, "30", 20)}

	run := func() string {
		notifier := newFakeNotifier()
		uc := buildUseCase(&fakeDirectory{users: []*entity.User{user}}, ledger, notifier, Policy{})
		if _, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return notifier.sentTo()[user.Email]
	}

	first := run()
	second := run()
	if first == "" || first != second {
		t.Error("expected identical report bodies for identical ledger data")
	}
}

func TestRunQuarterlyReport_ToleratesDeviantLedgerRows(t *testing.T) {
	user := testUser("u@example.com")
	stranger := testUser("stranger@example.com")

	ledger := newFakeLedger()
	// Out-of-range and foreign rows returned by a misbehaving collaborator:
	// the engine tolerates them without crashing.
	outOfRange := entity.NewTransaction(user.ID, entity.PlatformTwitch, "subs", "late payout",
		dec("10"), dec("1"), date(2024, time.June, 1))
	foreign := entity.NewTransaction(stranger.ID, entity.PlatformTwitch, "subs", "not mine",
		dec("20"), dec("2"), date(2024, time.February, 1))
	ledger.transactions[user.ID] = []*entity.Transaction{tx(user, "100", "5", 1), outOfRange, foreign}

	notifier := newFakeNotifier()
	uc := buildUseCase(&fakeDirectory{users: []*entity.User{user}}, ledger, notifier, Policy{})

	result, err := uc.Execute(context.Background(), RunReportInput{Period: q1Period()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Sent != 1 {
		t.Errorf("expected sent=1, got %d", result.Sent)
	}
}

func containsLine(body, line string) bool {
	return strings.Contains(body, line)
}
