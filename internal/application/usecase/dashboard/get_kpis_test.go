package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
)

type fakeTransactionRepo struct {
	totals adapter.RevenueTotals
	err    error
}

func (f *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.Pagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (f *fakeTransactionRepo) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) GetTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*adapter.RevenueTotals, error) {
	if f.err != nil {
		return nil, f.err
	}
	totals := f.totals
	return &totals, nil
}

type fakeExpenseRepo struct {
	totals adapter.ExpenseTotals
	err    error
}

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	return nil
}

func (f *fakeExpenseRepo) FindByFilter(ctx context.Context, filter adapter.ExpenseFilter, pagination adapter.Pagination) (*adapter.ExpenseListResult, error) {
	return &adapter.ExpenseListResult{}, nil
}

func (f *fakeExpenseRepo) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error) {
	return nil, nil
}

func (f *fakeExpenseRepo) GetTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*adapter.ExpenseTotals, error) {
	if f.err != nil {
		return nil, f.err
	}
	totals := f.totals
	return &totals, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGetKPIsUseCase(t *testing.T) {
	input := GetKPIsInput{
		UserID:    uuid.New(),
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 31),
	}

	t.Run("computes net revenue and net profit", func(t *testing.T) {
		uc := NewGetKPIsUseCase(
			&fakeTransactionRepo{totals: adapter.RevenueTotals{
				TotalRevenue:     dec("150"),
				TotalFees:        dec("5"),
				TransactionCount: 2,
			}},
			&fakeExpenseRepo{totals: adapter.ExpenseTotals{
				TotalExpenses: dec("30"),
				ExpenseCount:  1,
			}},
		)

		output, err := uc.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !output.NetRevenue.Equal(dec("145")) {
			t.Errorf("net revenue: expected 145, got %s", output.NetRevenue)
		}
		if !output.NetProfit.Equal(dec("115")) {
			t.Errorf("net profit: expected 115, got %s", output.NetProfit)
		}
		if output.TransactionCount != 2 || output.ExpenseCount != 1 {
			t.Errorf("unexpected counts: %d transactions, %d expenses",
				output.TransactionCount, output.ExpenseCount)
		}
	})

	t.Run("rejects missing date range", func(t *testing.T) {
		uc := NewGetKPIsUseCase(&fakeTransactionRepo{}, &fakeExpenseRepo{})

		_, err := uc.Execute(context.Background(), GetKPIsInput{UserID: input.UserID})
		if !errors.Is(err, domainerror.ErrMissingDateRange) {
			t.Errorf("expected ErrMissingDateRange, got %v", err)
		}
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		uc := NewGetKPIsUseCase(&fakeTransactionRepo{}, &fakeExpenseRepo{})

		inverted := input
		inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate

		_, err := uc.Execute(context.Background(), inverted)
		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		repoErr := errors.New("connection refused")
		uc := NewGetKPIsUseCase(&fakeTransactionRepo{err: repoErr}, &fakeExpenseRepo{})

		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, repoErr) {
			t.Errorf("expected wrapped repository error, got %v", err)
		}
	})
}
