// Package platform contains platform connection use cases.
package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
)

// ListConnectionsInput represents the input for listing platform connections.
type ListConnectionsInput struct {
	UserID uuid.UUID
}

// ConnectionOutput represents a single platform connection in the output.
type ConnectionOutput struct {
	ID          uuid.UUID
	Platform    entity.Platform
	Status      entity.ConnectionStatus
	ConnectedAt *time.Time
	LastSyncAt  *time.Time
}

// ListConnectionsOutput represents the output of listing connections.
type ListConnectionsOutput struct {
	Connections []*ConnectionOutput
}

// ListConnectionsUseCase handles listing a creator's platform connections.
type ListConnectionsUseCase struct {
	connectionRepo adapter.PlatformConnectionRepository
}

// NewListConnectionsUseCase creates a new ListConnectionsUseCase instance.
func NewListConnectionsUseCase(connectionRepo adapter.PlatformConnectionRepository) *ListConnectionsUseCase {
	return &ListConnectionsUseCase{
		connectionRepo: connectionRepo,
	}
}

// Execute lists the connections for the given user.
func (uc *ListConnectionsUseCase) Execute(ctx context.Context, input ListConnectionsInput) (*ListConnectionsOutput, error) {
	connections, err := uc.connectionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list platform connections: %w", err)
	}

	output := &ListConnectionsOutput{
		Connections: make([]*ConnectionOutput, len(connections)),
	}
	for i, conn := range connections {
		output.Connections[i] = &ConnectionOutput{
			ID:          conn.ID,
			Platform:    conn.Platform,
			Status:      conn.Status,
			ConnectedAt: conn.ConnectedAt,
			LastSyncAt:  conn.LastSyncAt,
		}
	}

	return output, nil
}
