// Package report contains the quarterly report engine use cases.
package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

func testPeriod() entity.ReportingPeriod {
	return entity.ReportingPeriod{
		Start: date(2024, time.January, 1),
		End:   date(2024, time.March, 31),
	}
}

func testUser(email string) *entity.User {
	return entity.NewUser(email, "Test Creator", "hash")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(user *entity.User, amount, fee string, day int) *entity.Transaction {
	return entity.NewTransaction(
		user.ID,
		entity.PlatformYouTube,
		"ad-revenue",
		"payout",
		dec(amount),
		dec(fee),
		date(2024, time.February, day),
	)
}

func exp(user *entity.User, amount string, day int) *entity.Expense {
	return entity.NewExpense(user.ID, "equipment", "gear", dec(amount), date(2024, time.February, day))
}

func TestSummarize(t *testing.T) {
	user := testUser("u1@example.com")

	t.Run("worked example", func(t *testing.T) {
		transactions := []*entity.Transaction{
			tx(user, "100", "5", 1),
			tx(user, "50", "0", 15),
		}
		expenses := []*entity.Expense{exp(user, "30", 20)}

		summary := Summarize(user, transactions, expenses, testPeriod())

		assertDecimal(t, "total revenue", summary.TotalRevenue, "150")
		assertDecimal(t, "total fees", summary.TotalFees, "5")
		assertDecimal(t, "net revenue", summary.NetRevenue, "145")
		assertDecimal(t, "total expenses", summary.TotalExpenses, "30")
		assertDecimal(t, "net profit", summary.NetProfit, "115")

		if summary.TransactionCount != 2 {
			t.Errorf("expected 2 transactions, got %d", summary.TransactionCount)
		}
		if summary.ExpenseCount != 1 {
			t.Errorf("expected 1 expense, got %d", summary.ExpenseCount)
		}
	})

	t.Run("zero activity yields a valid all-zero summary", func(t *testing.T) {
		summary := Summarize(user, nil, nil, testPeriod())

		assertDecimal(t, "total revenue", summary.TotalRevenue, "0")
		assertDecimal(t, "net profit", summary.NetProfit, "0")
		if summary.HasActivity() {
			t.Error("expected HasActivity to be false for an empty summary")
		}
	})

	t.Run("negative amounts are summed, not rejected", func(t *testing.T) {
		transactions := []*entity.Transaction{
			tx(user, "100", "3", 1),
			tx(user, "-25", "0", 2), // refund
		}

		summary := Summarize(user, transactions, nil, testPeriod())

		assertDecimal(t, "total revenue", summary.TotalRevenue, "75")
		assertDecimal(t, "net revenue", summary.NetRevenue, "72")
		assertDecimal(t, "net profit", summary.NetProfit, "72")
	})

	t.Run("invariants hold for fractional amounts", func(t *testing.T) {
		transactions := []*entity.Transaction{
			tx(user, "0.10", "0.01", 1),
			tx(user, "0.20", "0.02", 2),
			tx(user, "99.99", "1.37", 3),
		}
		expenses := []*entity.Expense{
			exp(user, "12.34", 4),
			exp(user, "0.66", 5),
		}

		summary := Summarize(user, transactions, expenses, testPeriod())

		if !summary.NetRevenue.Equal(summary.TotalRevenue.Sub(summary.TotalFees)) {
			t.Error("netRevenue invariant violated")
		}
		if !summary.NetProfit.Equal(summary.NetRevenue.Sub(summary.TotalExpenses)) {
			t.Error("netProfit invariant violated")
		}
		assertDecimal(t, "total revenue", summary.TotalRevenue, "100.29")
		assertDecimal(t, "total expenses", summary.TotalExpenses, "13")
	})

	t.Run("computation is deterministic across calls", func(t *testing.T) {
		transactions := []*entity.Transaction{tx(user, "42.42", "1.01", 1)}
		expenses := []*entity.Expense{exp(user, "7.77", 2)}

		first := Summarize(user, transactions, expenses, testPeriod())
		second := Summarize(user, transactions, expenses, testPeriod())

		if !first.NetProfit.Equal(second.NetProfit) ||
			!first.TotalRevenue.Equal(second.TotalRevenue) ||
			!first.TotalFees.Equal(second.TotalFees) {
			t.Error("expected identical summaries for identical inputs")
		}
	})
}

func assertDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", field, want, got)
	}
}
