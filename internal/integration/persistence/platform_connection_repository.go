// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
	"github.com/creator-ledger/backend/internal/integration/persistence/model"
)

// platformConnectionRepository implements adapter.PlatformConnectionRepository.
type platformConnectionRepository struct {
	db *gorm.DB
}

// NewPlatformConnectionRepository creates a new platform connection repository instance.
func NewPlatformConnectionRepository(db *gorm.DB) adapter.PlatformConnectionRepository {
	return &platformConnectionRepository{
		db: db,
	}
}

// FindByUser returns all platform connections for a user.
func (r *platformConnectionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PlatformConnection, error) {
	var connectionModels []model.PlatformConnectionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("platform ASC").
		Find(&connectionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	connections := make([]*entity.PlatformConnection, len(connectionModels))
	for i, cm := range connectionModels {
		connections[i] = cm.ToEntity()
	}
	return connections, nil
}

// Upsert creates or updates the connection for (user, platform).
func (r *platformConnectionRepository) Upsert(ctx context.Context, connection *entity.PlatformConnection) error {
	connectionModel := model.PlatformConnectionFromEntity(connection)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "connected_at", "last_sync_at", "updated_at",
			}),
		}).
		Create(connectionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
