// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/application/adapter"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
)

// GetKPIsInput represents the input for computing dashboard KPIs.
type GetKPIsInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// GetKPIsOutput represents the KPI figures for the requested range.
type GetKPIsOutput struct {
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalFees        decimal.Decimal `json:"total_fees"`
	NetRevenue       decimal.Decimal `json:"net_revenue"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	TransactionCount int             `json:"transaction_count"`
	ExpenseCount     int             `json:"expense_count"`
}

// GetKPIsUseCase computes headline revenue figures for the dashboard.
type GetKPIsUseCase struct {
	transactionRepo adapter.TransactionRepository
	expenseRepo     adapter.ExpenseRepository
}

// NewGetKPIsUseCase creates a new GetKPIsUseCase instance.
func NewGetKPIsUseCase(
	transactionRepo adapter.TransactionRepository,
	expenseRepo adapter.ExpenseRepository,
) *GetKPIsUseCase {
	return &GetKPIsUseCase{
		transactionRepo: transactionRepo,
		expenseRepo:     expenseRepo,
	}
}

// Execute aggregates revenue and expense totals for the given range.
func (uc *GetKPIsUseCase) Execute(ctx context.Context, input GetKPIsInput) (*GetKPIsOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	revenue, err := uc.transactionRepo.GetTotals(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue totals: %w", err)
	}

	expenses, err := uc.expenseRepo.GetTotals(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense totals: %w", err)
	}

	netRevenue := revenue.TotalRevenue.Sub(revenue.TotalFees)

	return &GetKPIsOutput{
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		TotalRevenue:     revenue.TotalRevenue,
		TotalFees:        revenue.TotalFees,
		NetRevenue:       netRevenue,
		TotalExpenses:    expenses.TotalExpenses,
		NetProfit:        netRevenue.Sub(expenses.TotalExpenses),
		TransactionCount: revenue.TransactionCount,
		ExpenseCount:     expenses.ExpenseCount,
	}, nil
}

// validateInput validates the input parameters.
func (uc *GetKPIsUseCase) validateInput(input GetKPIsInput) error {
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeMissingDateRange,
			"start_date and end_date are required",
			domainerror.ErrMissingDateRange,
		)
	}

	if input.EndDate.Before(input.StartDate) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not precede start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return nil
}
