// Package transaction contains revenue transaction use cases.
package transaction

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

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for recording a revenue transaction.
type CreateTransactionInput struct {
	UserID          uuid.UUID
	Platform        entity.Platform
	Category        string
	Description     string
	Amount          decimal.Decimal
	PlatformFee     decimal.Decimal
	TransactionDate time.Time
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles revenue transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if !isValidPlatform(input.Platform) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidPlatform,
			"platform must be one of youtube, twitch, patreon, substack, other",
			domainerror.ErrInvalidPlatform,
		)
	}

	// Fees are a deduction; a negative fee would inflate net revenue.
	if input.PlatformFee.IsNegative() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			"platform fee must not be negative",
			domainerror.ErrInvalidAmount,
		)
	}

	if input.TransactionDate.IsZero() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingDateRange,
			"transaction date is required",
			domainerror.ErrMissingDateRange,
		)
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Platform,
		input.Category,
		input.Description,
		input.Amount,
		input.PlatformFee,
		input.TransactionDate,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(transaction),
	}, nil
}

// isValidPlatform validates the platform value.
func isValidPlatform(platform entity.Platform) bool {
	switch platform {
	case entity.PlatformYouTube, entity.PlatformTwitch, entity.PlatformPatreon,
		entity.PlatformSubstack, entity.PlatformOther:
		return true
	}
	return false
}
