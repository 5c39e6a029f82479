// Package report contains the quarterly report engine use cases.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// Summarize reduces a user's ledger records into a financial summary for
// the period. The invariants netRevenue = totalRevenue - totalFees and
// netProfit = netRevenue - totalExpenses hold exactly.
//
// The ledger query contract puts range and ownership filtering on the
// collaborator; records are summed as delivered. Negative amounts
// (refunds, chargebacks) are summed like any other value.
func Summarize(
	user *entity.User,
	transactions []*entity.Transaction,
	expenses []*entity.Expense,
	period entity.ReportingPeriod,
) *entity.UserSummary {
	totalRevenue := decimal.Zero
	totalFees := decimal.Zero
	totalExpenses := decimal.Zero

	for _, tx := range transactions {
		totalRevenue = totalRevenue.Add(tx.Amount)
		totalFees = totalFees.Add(tx.PlatformFee)
	}

	for _, exp := range expenses {
		totalExpenses = totalExpenses.Add(exp.Amount)
	}

	netRevenue := totalRevenue.Sub(totalFees)
	netProfit := netRevenue.Sub(totalExpenses)

	return &entity.UserSummary{
		User:             user,
		Period:           period,
		TotalRevenue:     totalRevenue,
		TotalFees:        totalFees,
		NetRevenue:       netRevenue,
		TotalExpenses:    totalExpenses,
		NetProfit:        netProfit,
		TransactionCount: len(transactions),
		ExpenseCount:     len(expenses),
	}
}
