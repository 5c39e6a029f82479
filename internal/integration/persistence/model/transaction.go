// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Platform        string          `gorm:"type:varchar(20);not null;index"`
	Category        string          `gorm:"type:varchar(100)"`
	Description     string          `gorm:"type:varchar(255)"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PlatformFee     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TransactionDate time.Time       `gorm:"type:date;not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	// Relationship (not loaded by default, use Preload)
	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:              m.ID,
		UserID:          m.UserID,
		Platform:        entity.Platform(m.Platform),
		Category:        m.Category,
		Description:     m.Description,
		Amount:          m.Amount,
		PlatformFee:     m.PlatformFee,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              transaction.ID,
		UserID:          transaction.UserID,
		Platform:        string(transaction.Platform),
		Category:        transaction.Category,
		Description:     transaction.Description,
		Amount:          transaction.Amount,
		PlatformFee:     transaction.PlatformFee,
		TransactionDate: transaction.TransactionDate,
		CreatedAt:       transaction.CreatedAt,
		UpdatedAt:       transaction.UpdatedAt,
	}
}
