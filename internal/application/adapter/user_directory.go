// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/creator-ledger/backend/internal/domain/entity"
)

// UserDirectory enumerates users eligible for reporting. A failure here is
// fatal for a report run; there is no partial mode without a user list.
type UserDirectory interface {
	// ListUsers returns all users eligible for reporting.
	ListUsers(ctx context.Context) ([]*entity.User, error)
}
