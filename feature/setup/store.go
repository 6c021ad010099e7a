package setup

import (
	"context"
	"errors"
	"fmt"

	"rpbot/feature/setup/models"

	"gorm.io/gorm"
)

// ConfigStore persists one ServerConfig per managed server.
type ConfigStore interface {
	// GetByServerID returns nil without error when the server is not linked.
	GetByServerID(ctx context.Context, serverID uint64) (*models.ServerConfig, error)
	Insert(ctx context.Context, cfg *models.ServerConfig) (string, error)
	Update(ctx context.Context, cfg *models.ServerConfig) error
	ListByOwnerGroup(ctx context.Context, universeID string) ([]models.ServerConfig, error)
	DeleteByOwnerGroup(ctx context.Context, universeID string) error
}

// GormStore is the ConfigStore backed by the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the server_configs table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.ServerConfig{})
}

func (s *GormStore) GetByServerID(ctx context.Context, serverID uint64) (*models.ServerConfig, error) {
	var cfg models.ServerConfig
	err := s.db.WithContext(ctx).Where("server_id = ?", serverID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load server %d: %w", serverID, err)
	}
	return &cfg, nil
}

func (s *GormStore) Insert(ctx context.Context, cfg *models.ServerConfig) (string, error) {
	if err := s.db.WithContext(ctx).Create(cfg).Error; err != nil {
		return "", fmt.Errorf("failed to insert server %d: %w", cfg.ServerID, err)
	}
	return cfg.ID, nil
}

// Update writes every column, so unset references are persisted as zero.
func (s *GormStore) Update(ctx context.Context, cfg *models.ServerConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("failed to update server %d: record has no id", cfg.ServerID)
	}
	if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return fmt.Errorf("failed to update server %d: %w", cfg.ServerID, err)
	}
	return nil
}

func (s *GormStore) ListByOwnerGroup(ctx context.Context, universeID string) ([]models.ServerConfig, error) {
	var configs []models.ServerConfig
	if err := s.db.WithContext(ctx).Where("universe_id = ?", universeID).Order("created_at").Find(&configs).Error; err != nil {
		return nil, fmt.Errorf("failed to list servers of universe %s: %w", universeID, err)
	}
	return configs, nil
}

func (s *GormStore) DeleteByOwnerGroup(ctx context.Context, universeID string) error {
	if err := s.db.WithContext(ctx).Where("universe_id = ?", universeID).Delete(&models.ServerConfig{}).Error; err != nil {
		return fmt.Errorf("failed to delete servers of universe %s: %w", universeID, err)
	}
	return nil
}
