// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
)

// ledgerQuery implements the adapter.LedgerQuery interface on top of the
// transaction and expense tables. The report engine reads through this
// instead of the full repositories.
type ledgerQuery struct {
	transactions adapter.TransactionRepository
	expenses     adapter.ExpenseRepository
}

// NewLedgerQuery creates a ledger query backed by the database.
func NewLedgerQuery(db *gorm.DB) adapter.LedgerQuery {
	return &ledgerQuery{
		transactions: NewTransactionRepository(db),
		expenses:     NewExpenseRepository(db),
	}
}

// GetTransactions returns a user's transactions in the inclusive range.
func (q *ledgerQuery) GetTransactions(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	return q.transactions.FindByUserAndDateRange(ctx, userID, start, end)
}

// GetExpenses returns a user's expenses in the inclusive range.
func (q *ledgerQuery) GetExpenses(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error) {
	return q.expenses.FindByUserAndDateRange(ctx, userID, start, end)
}
