// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/creator-ledger/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for recording revenue.
type CreateTransactionRequest struct {
	Platform        string `json:"platform" binding:"required"`
	Category        string `json:"category" binding:"max=100"`
	Description     string `json:"description" binding:"max=255"`
	Amount          string `json:"amount" binding:"required"`
	PlatformFee     string `json:"platform_fee"`
	TransactionDate string `json:"transaction_date" binding:"required"` // YYYY-MM-DD
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	Platform        string    `json:"platform"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Amount          string    `json:"amount"`
	PlatformFee     string    `json:"platform_fee"`
	TransactionDate string    `json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// PaginationResponse represents pagination metadata in list responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListTransactionsResponse represents the response for listing transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// ToTransactionResponse converts a use case output to a response DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:              txn.ID.String(),
		Platform:        string(txn.Platform),
		Category:        txn.Category,
		Description:     txn.Description,
		Amount:          txn.Amount.StringFixed(2),
		PlatformFee:     txn.PlatformFee.StringFixed(2),
		TransactionDate: txn.TransactionDate.Format("2006-01-02"),
		CreatedAt:       txn.CreatedAt,
	}
}
