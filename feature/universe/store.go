package universe

import (
	"context"
	"errors"
	"fmt"

	"rpbot/feature/universe/models"

	"gorm.io/gorm"
)

// Store persists universes.
type Store interface {
	Create(ctx context.Context, u *models.Universe) error
	// Get returns nil without error when the universe does not exist.
	Get(ctx context.Context, id string) (*models.Universe, error)
	CountByCreator(ctx context.Context, creatorID uint64) (int64, error)
	Delete(ctx context.Context, id string) error
}

// GormStore is the Store backed by the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the universes table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.Universe{})
}

func (s *GormStore) Create(ctx context.Context, u *models.Universe) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create universe %q: %w", u.Name, err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Universe, error) {
	var u models.Universe
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load universe %s: %w", id, err)
	}
	return &u, nil
}

func (s *GormStore) CountByCreator(ctx context.Context, creatorID uint64) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Universe{}).Where("creator_id = ?", creatorID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count universes of %d: %w", creatorID, err)
	}
	return count, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Universe{}).Error; err != nil {
		return fmt.Errorf("failed to delete universe %s: %w", id, err)
	}
	return nil
}
