package place

import (
	"context"
	"errors"
	"fmt"

	"rpbot/feature/place/models"

	"gorm.io/gorm"
)

// Store persists places.
type Store interface {
	Insert(ctx context.Context, p *models.Place) error
	// GetByCategory returns nil without error when no place of the universe owns the category.
	GetByCategory(ctx context.Context, universeID string, categoryID uint64) (*models.Place, error)
	ListByServer(ctx context.Context, serverID uint64) ([]models.Place, error)
}

// GormStore is the Store backed by the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the places table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.Place{})
}

func (s *GormStore) Insert(ctx context.Context, p *models.Place) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to insert place %q: %w", p.Name, err)
	}
	return nil
}

func (s *GormStore) GetByCategory(ctx context.Context, universeID string, categoryID uint64) (*models.Place, error) {
	var p models.Place
	err := s.db.WithContext(ctx).
		Where("universe_id = ? AND category_id = ?", universeID, categoryID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load place %d: %w", categoryID, err)
	}
	return &p, nil
}

func (s *GormStore) ListByServer(ctx context.Context, serverID uint64) ([]models.Place, error) {
	var places []models.Place
	if err := s.db.WithContext(ctx).Where("server_id = ?", serverID).Order("created_at").Find(&places).Error; err != nil {
		return nil, fmt.Errorf("failed to list places of %d: %w", serverID, err)
	}
	return places, nil
}
