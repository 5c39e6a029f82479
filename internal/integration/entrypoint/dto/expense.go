// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/creator-ledger/backend/internal/application/usecase/expense"
)

// CreateExpenseRequest represents the request body for recording an expense.
type CreateExpenseRequest struct {
	Category    string `json:"category" binding:"max=100"`
	Description string `json:"description" binding:"max=255"`
	Amount      string `json:"amount" binding:"required"`
	ExpenseDate string `json:"expense_date" binding:"required"` // YYYY-MM-DD
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	ExpenseDate string    `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListExpensesResponse represents the response for listing expenses.
type ListExpensesResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToExpenseResponse converts a use case output to a response DTO.
func ToExpenseResponse(exp *expense.ExpenseOutput) ExpenseResponse {
	return ExpenseResponse{
		ID:          exp.ID.String(),
		Category:    exp.Category,
		Description: exp.Description,
		Amount:      exp.Amount.StringFixed(2),
		ExpenseDate: exp.ExpenseDate.Format("2006-01-02"),
		CreatedAt:   exp.CreatedAt,
	}
}
