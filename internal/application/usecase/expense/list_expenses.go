// Package expense contains business expense use cases.
package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Page      int
	Limit     int
}

// ExpenseOutput represents a single expense in the output.
type ExpenseOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses   []*ExpenseOutput
	Pagination PaginationOutput
}

// ListExpensesUseCase handles listing expenses logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := adapter.ExpenseFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Category:  input.Category,
	}

	result, err := uc.expenseRepo.FindByFilter(ctx, filter, adapter.Pagination{Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	output := &ListExpensesOutput{
		Expenses: make([]*ExpenseOutput, len(result.Expenses)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}

	for i, exp := range result.Expenses {
		output.Expenses[i] = toExpenseOutput(exp)
	}

	return output, nil
}

// toExpenseOutput maps an expense entity to its output form.
func toExpenseOutput(exp *entity.Expense) *ExpenseOutput {
	return &ExpenseOutput{
		ID:          exp.ID,
		UserID:      exp.UserID,
		Category:    exp.Category,
		Description: exp.Description,
		Amount:      exp.Amount,
		ExpenseDate: exp.ExpenseDate,
		CreatedAt:   exp.CreatedAt,
		UpdatedAt:   exp.UpdatedAt,
	}
}
