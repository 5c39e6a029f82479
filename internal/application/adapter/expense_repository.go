// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// ExpenseFilter defines filter options for listing expenses.
type ExpenseFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
}

// ExpenseListResult represents the result of listing expenses.
type ExpenseListResult struct {
	Expenses   []*entity.Expense
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ExpenseTotals represents aggregated expense totals for a date range.
type ExpenseTotals struct {
	TotalExpenses decimal.Decimal
	ExpenseCount  int
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByFilter retrieves expenses based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter ExpenseFilter, pagination Pagination) (*ExpenseListResult, error)

	// FindByUserAndDateRange returns all expenses for a user with
	// start <= expense_date <= end, both ends inclusive.
	FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error)

	// GetTotals calculates expense totals for a user within a date range.
	GetTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*ExpenseTotals, error)
}
