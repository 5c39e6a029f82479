// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// LedgerQuery fetches a user's ledger records inside an inclusive date range.
// Implementations filter server-side; callers trust the filter but must
// tolerate deviant rows without crashing.
type LedgerQuery interface {
	// GetTransactions returns the user's revenue transactions with
	// start <= transaction_date <= end.
	GetTransactions(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// GetExpenses returns the user's expenses with
	// start <= expense_date <= end.
	GetExpenses(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error)
}
