// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// PlatformConnectionModel represents the platform_connections table.
type PlatformConnectionModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_platform,unique"`
	Platform    string     `gorm:"type:varchar(20);not null;index:idx_user_platform,unique"`
	Status      string     `gorm:"type:varchar(20);not null"`
	ConnectedAt *time.Time `gorm:"type:timestamp"`
	LastSyncAt  *time.Time `gorm:"type:timestamp"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the PlatformConnectionModel.
func (PlatformConnectionModel) TableName() string {
	return "platform_connections"
}

// ToEntity converts a PlatformConnectionModel to a domain entity.
func (m *PlatformConnectionModel) ToEntity() *entity.PlatformConnection {
	return &entity.PlatformConnection{
		ID:          m.ID,
		UserID:      m.UserID,
		Platform:    entity.Platform(m.Platform),
		Status:      entity.ConnectionStatus(m.Status),
		ConnectedAt: m.ConnectedAt,
		LastSyncAt:  m.LastSyncAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PlatformConnectionFromEntity creates a model from a domain entity.
func PlatformConnectionFromEntity(connection *entity.PlatformConnection) *PlatformConnectionModel {
	return &PlatformConnectionModel{
		ID:          connection.ID,
		UserID:      connection.UserID,
		Platform:    string(connection.Platform),
		Status:      string(connection.Status),
		ConnectedAt: connection.ConnectedAt,
		LastSyncAt:  connection.LastSyncAt,
		CreatedAt:   connection.CreatedAt,
		UpdatedAt:   connection.UpdatedAt,
	}
}
