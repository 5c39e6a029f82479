// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Platform  entity.Platform
	Category  string
}

// Pagination defines pagination options for list queries.
type Pagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// RevenueTotals represents aggregated revenue totals for a date range.
type RevenueTotals struct {
	TotalRevenue     decimal.Decimal
	TotalFees        decimal.Decimal
	TransactionCount int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination Pagination) (*TransactionListResult, error)

	// FindByUserAndDateRange returns all transactions for a user with
	// start <= transaction_date <= end, both ends inclusive.
	FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// GetTotals calculates revenue totals for a user within a date range.
	GetTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*RevenueTotals, error)
}
