// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConnectionStatus represents the state of a platform connection.
type ConnectionStatus string

const (
	ConnectionStatusConnected    ConnectionStatus = "connected"
	ConnectionStatusPending      ConnectionStatus = "pending"
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
)

// PlatformConnection tracks whether a creator has linked a revenue platform
// and when it last synced.
type PlatformConnection struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Platform    Platform
	Status      ConnectionStatus
	ConnectedAt *time.Time
	LastSyncAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPlatformConnection creates a new pending connection for a platform.
func NewPlatformConnection(userID uuid.UUID, platform Platform) *PlatformConnection {
	now := time.Now().UTC()
	return &PlatformConnection{
		ID:        uuid.New(),
		UserID:    userID,
		Platform:  platform,
		Status:    ConnectionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkConnected transitions the connection into the connected state.
func (c *PlatformConnection) MarkConnected() {
	now := time.Now().UTC()
	c.Status = ConnectionStatusConnected
	c.ConnectedAt = &now
	c.UpdatedAt = now
}

// MarkSynced records a successful sync.
func (c *PlatformConnection) MarkSynced() {
	now := time.Now().UTC()
	c.LastSyncAt = &now
	c.UpdatedAt = now
}
