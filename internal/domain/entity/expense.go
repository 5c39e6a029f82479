// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents one cost event for a creator (equipment, software,
// contractors, and so on).
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(
	userID uuid.UUID,
	category string,
	description string,
	amount decimal.Decimal,
	expenseDate time.Time,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    category,
		Description: description,
		Amount:      amount,
		ExpenseDate: expenseDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
