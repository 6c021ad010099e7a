package universe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rpbot/core/platform"
	"rpbot/core/reconcile"
	"rpbot/feature/setup"
	setupModels "rpbot/feature/setup/models"
	"rpbot/feature/universe/models"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrUniverseNotFound    = errors.New("universe not found")
	ErrUniverseLimit       = errors.New("universe limit reached")
	ErrServerLimit         = errors.New("server limit reached")
	ErrServerAlreadyLinked = errors.New("server already linked to a universe")
	ErrNotCreator          = errors.New("only the creator can delete a universe")
	ErrInvalidName         = errors.New("universe name is required")
	// ErrCleanupIncomplete is returned after deletion when some remote resources could not be removed.
	ErrCleanupIncomplete = errors.New("remote cleanup incomplete")
)

// Service manages universes and the servers linked to them.
type Service struct {
	store   Store
	servers setup.ConfigStore
	api     platform.ResourceAPI
	cfg     Config
	logger  *zap.Logger
}

// NewService creates a new universe service.
func NewService(store Store, servers setup.ConfigStore, api platform.ResourceAPI, cfg Config, logger *zap.Logger) *Service {
	return &Service{store: store, servers: servers, api: api, cfg: cfg, logger: logger}
}

// Create registers a universe for creatorID within the free tier limit.
func (s *Service) Create(ctx context.Context, name string, creatorID uint64) (*models.Universe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	count, err := s.store.CountByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.cfg.MaxUniversesPerCreator) {
		return nil, fmt.Errorf("%w: %d of %d", ErrUniverseLimit, count, s.cfg.MaxUniversesPerCreator)
	}

	u := &models.Universe{Name: name, CreatorID: creatorID}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("Universe created", zap.String("universe_id", u.ID), zap.Uint64("creator_id", creatorID))
	return u, nil
}

// LinkServer attaches serverID to a universe with an empty provisioning record.
func (s *Service) LinkServer(ctx context.Context, universeID string, serverID uint64) (*setupModels.ServerConfig, error) {
	u, err := s.get(ctx, universeID)
	if err != nil {
		return nil, err
	}

	existing, err := s.servers.GetByServerID(ctx, serverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrServerAlreadyLinked, existing.UniverseID)
	}

	linked, err := s.servers.ListByOwnerGroup(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if len(linked) >= s.cfg.MaxServersPerUniverse {
		return nil, fmt.Errorf("%w: %d of %d", ErrServerLimit, len(linked), s.cfg.MaxServersPerUniverse)
	}

	cfg := &setupModels.ServerConfig{UniverseID: u.ID, ServerID: serverID}
	if _, err := s.servers.Insert(ctx, cfg); err != nil {
		return nil, err
	}
	s.logger.Info("Server linked", zap.String("universe_id", u.ID), zap.Uint64("server_id", serverID))
	return cfg, nil
}

// Delete removes every provisioned resource of every linked server, then the
// records themselves. Remote cleanup is best effort: the records are deleted
// even if some resources remain, and ErrCleanupIncomplete reports it.
func (s *Service) Delete(ctx context.Context, universeID string, requesterID uint64) error {
	u, err := s.get(ctx, universeID)
	if err != nil {
		return err
	}
	if u.CreatorID != requesterID {
		return ErrNotCreator
	}

	linked, err := s.servers.ListByOwnerGroup(ctx, u.ID)
	if err != nil {
		return err
	}

	var cleanupErr error
	for i := range linked {
		cfg := &linked[i]
		l := s.logger.With(zap.String("universe_id", u.ID), zap.Uint64("server_id", cfg.ServerID))
		if err := reconcile.Rollback(ctx, s.api, cfg.ServerID, cfg, &setupModels.ServerConfig{}, l); err != nil {
			l.Error("Server cleanup incomplete, manual cleanup required", zap.Error(err))
			cleanupErr = multierr.Append(cleanupErr, fmt.Errorf("server %d: %w", cfg.ServerID, err))
		}
	}

	if err := s.servers.DeleteByOwnerGroup(ctx, u.ID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, u.ID); err != nil {
		return err
	}
	s.logger.Info("Universe deleted", zap.String("universe_id", u.ID), zap.Int("servers", len(linked)))

	if cleanupErr != nil {
		return fmt.Errorf("%w: %w", ErrCleanupIncomplete, cleanupErr)
	}
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*models.Universe, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUniverseNotFound, id)
	}
	return u, nil
}
