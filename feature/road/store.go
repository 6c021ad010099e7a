package road

import (
	"context"
	"fmt"

	"rpbot/feature/road/models"

	"gorm.io/gorm"
)

// Store persists roads.
type Store interface {
	Insert(ctx context.Context, r *models.Road) error
	ListByServer(ctx context.Context, serverID uint64) ([]models.Road, error)
}

// GormStore is the Store backed by the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the roads table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.Road{})
}

func (s *GormStore) Insert(ctx context.Context, r *models.Road) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to insert road %q: %w", r.Name, err)
	}
	return nil
}

func (s *GormStore) ListByServer(ctx context.Context, serverID uint64) ([]models.Road, error) {
	var roads []models.Road
	if err := s.db.WithContext(ctx).Where("server_id = ?", serverID).Order("created_at").Find(&roads).Error; err != nil {
		return nil, fmt.Errorf("failed to list roads of %d: %w", serverID, err)
	}
	return roads, nil
}
