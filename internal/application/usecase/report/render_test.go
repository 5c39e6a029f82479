// Package report contains the quarterly report engine use cases.
package report

import (
	"strings"
	"testing"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

func TestRenderReport(t *testing.T) {
	user := testUser("creator@example.com")
	user.Name = "Ada"

	transactions := []*entity.Transaction{
		tx(user, "100", "5", 1),
		tx(user, "50", "0", 15),
	}
	expenses := []*entity.Expense{exp(user, "30", 20)}
	summary := Summarize(user, transactions, expenses, testPeriod())

	t.Run("subject carries the quarter label", func(t *testing.T) {
		subject, _ := RenderReport(summary)
		if subject != "Your Q1 2024 creator tax report" {
			t.Errorf("unexpected subject: %q", subject)
		}
	})

	t.Run("body formats currency to two decimal places", func(t *testing.T) {
		_, body := RenderReport(summary)

		for _, want := range []string{
			"Total revenue:  150.00",
			"Platform fees:  5.00",
			"Net revenue:    145.00",
			"Total expenses: 30.00",
			"Net profit:     115.00",
			"Transactions counted: 2",
			"Expenses counted:     1",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q\nbody:\n%s", want, body)
			}
		}
	})

	t.Run("body states the period bounds", func(t *testing.T) {
		_, body := RenderReport(summary)
		if !strings.Contains(body, "Q1 2024 (2024-01-01 to 2024-03-31)") {
			t.Errorf("body missing period line:\n%s", body)
		}
	})

	t.Run("fields appear in stable order", func(t *testing.T) {
		_, body := RenderReport(summary)

		order := []string{"Total revenue", "Platform fees", "Net revenue", "Total expenses", "Net profit"}
		last := -1
		for _, field := range order {
			idx := strings.Index(body, field)
			if idx < 0 {
				t.Fatalf("body missing field %q", field)
			}
			if idx < last {
				t.Errorf("field %q out of order", field)
			}
			last = idx
		}
	})

	t.Run("rendering is deterministic", func(t *testing.T) {
		subject1, body1 := RenderReport(summary)
		subject2, body2 := RenderReport(summary)

		if subject1 != subject2 || body1 != body2 {
			t.Error("expected identical output for identical summaries")
		}
	})

	t.Run("addresses user by email when no name is set", func(t *testing.T) {
		anon := testUser("anon@example.com")
		anon.Name = ""
		anonSummary := Summarize(anon, nil, nil, testPeriod())

		_, body := RenderReport(anonSummary)
		if !strings.Contains(body, "Hi anon@example.com,") {
			t.Errorf("expected email fallback in greeting:\n%s", body)
		}
	})
}
