// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Platform identifies the revenue source a transaction came from.
type Platform string

const (
	PlatformYouTube  Platform = "youtube"
	PlatformTwitch   Platform = "twitch"
	PlatformPatreon  Platform = "patreon"
	PlatformSubstack Platform = "substack"
	PlatformOther    Platform = "other"
)

// Transaction represents one revenue event for a creator.
// Amount is the gross payout; PlatformFee is the cut retained by the
// platform (zero when the platform reports net amounts).
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Platform        Platform
	Category        string
	Description     string
	Amount          decimal.Decimal
	PlatformFee     decimal.Decimal
	TransactionDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	platform Platform,
	category string,
	description string,
	amount decimal.Decimal,
	platformFee decimal.Decimal,
	transactionDate time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		Platform:        platform,
		Category:        category,
		Description:     description,
		Amount:          amount,
		PlatformFee:     platformFee,
		TransactionDate: transactionDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
