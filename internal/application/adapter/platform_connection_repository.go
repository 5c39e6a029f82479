// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// PlatformConnectionRepository defines the interface for platform connection persistence.
type PlatformConnectionRepository interface {
	// FindByUser returns all platform connections for a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PlatformConnection, error)

	// Upsert creates or updates the connection for (user, platform).
	Upsert(ctx context.Context, connection *entity.PlatformConnection) error
}
