// Package expense contains business expense use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 255

// CreateExpenseInput represents the input for recording a business expense.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			"expense amount must not be negative",
			domainerror.ErrInvalidAmount,
		)
	}

	if input.ExpenseDate.IsZero() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingDateRange,
			"expense date is required",
			domainerror.ErrMissingDateRange,
		)
	}

	expense := entity.NewExpense(
		input.UserID,
		input.Category,
		input.Description,
		input.Amount,
		input.ExpenseDate,
	)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &CreateExpenseOutput{
		Expense: toExpenseOutput(expense),
	}, nil
}
