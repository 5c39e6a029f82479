// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/creator-ledger/backend/internal/application/usecase/platform"
)

// ConnectionResponse represents a platform connection in API responses.
type ConnectionResponse struct {
	ID          string     `json:"id"`
	Platform    string     `json:"platform"`
	Status      string     `json:"status"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
	LastSyncAt  *time.Time `json:"last_sync_at,omitempty"`
}

// ListConnectionsResponse represents the response for listing connections.
type ListConnectionsResponse struct {
	Connections []ConnectionResponse `json:"connections"`
}

// ToListConnectionsResponse converts a use case output to a response DTO.
func ToListConnectionsResponse(output *platform.ListConnectionsOutput) ListConnectionsResponse {
	connections := make([]ConnectionResponse, len(output.Connections))
	for i, conn := range output.Connections {
		connections[i] = ConnectionResponse{
			ID:          conn.ID.String(),
			Platform:    string(conn.Platform),
			Status:      string(conn.Status),
			ConnectedAt: conn.ConnectedAt,
			LastSyncAt:  conn.LastSyncAt,
		}
	}
	return ListConnectionsResponse{Connections: connections}
}
