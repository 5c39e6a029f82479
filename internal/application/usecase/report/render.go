// Package report contains the quarterly report engine use cases.
package report

import (
	"fmt"
	"strings"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// RenderReport produces the subject and plain-text body for one user's
// quarterly report. Rendering is deterministic: stable field order,
// currency to two decimal places, so the same summary always yields the
// same message.
func RenderReport(summary *entity.UserSummary) (subject, body string) {
	period := summary.Period
	subject = fmt.Sprintf("Your %s creator tax report", period.Label())

	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", summary.User.DisplayName())
	fmt.Fprintf(&b, "Here is your revenue summary for %s (%s to %s).\n\n",
		period.Label(),
		period.Start.Format("2006-01-02"),
		period.End.Format("2006-01-02"),
	)

	fmt.Fprintf(&b, "Total revenue:  %s\n", summary.TotalRevenue.StringFixed(2))
	fmt.Fprintf(&b, "Platform fees:  %s\n", summary.TotalFees.StringFixed(2))
	fmt.Fprintf(&b, "Net revenue:    %s\n", summary.NetRevenue.StringFixed(2))
	fmt.Fprintf(&b, "Total expenses: %s\n", summary.TotalExpenses.StringFixed(2))
	fmt.Fprintf(&b, "Net profit:     %s\n\n", summary.NetProfit.StringFixed(2))

	fmt.Fprintf(&b, "Transactions counted: %d\n", summary.TransactionCount)
	fmt.Fprintf(&b, "Expenses counted:     %d\n\n", summary.ExpenseCount)

	b.WriteString("Keep this summary for your quarterly tax filing.\n")

	return subject, b.String()
}
