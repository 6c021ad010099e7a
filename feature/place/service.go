package place

import (
	"context"
	"fmt"
	"strings"

	"rpbot/core/platform"
	"rpbot/core/reconcile"
	"rpbot/feature/place/models"
	"rpbot/feature/setup"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Service creates the places of linked servers.
type Service struct {
	store   Store
	servers setup.ConfigStore
	api     platform.ResourceAPI
	logger  *zap.Logger
}

// NewService creates a new place service.
func NewService(store Store, servers setup.ConfigStore, api platform.ResourceAPI, logger *zap.Logger) *Service {
	return &Service{store: store, servers: servers, api: api, logger: logger}
}

// Create makes the role and the private category of a new place, then records it
// under the universe of the server. If a step fails, whatever was created is deleted.
func (s *Service) Create(ctx context.Context, serverID uint64, name string) (*models.Place, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	server, err := s.servers.GetByServerID(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	if server == nil {
		return nil, fmt.Errorf("%w: %d", ErrServerNotFound, serverID)
	}

	l := s.logger.With(zap.Uint64("server_id", serverID), zap.String("place", name))
	everyone, err := s.api.EveryoneRole(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("%w: everyone role: %w", ErrLookupFailed, err)
	}

	p := &models.Place{UniverseID: server.UniverseID, ServerID: serverID, Name: name}

	role, err := s.api.CreateRole(ctx, serverID, platform.RoleSpec{Name: name})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoleCreationFailed, err)
	}
	p.Role = reconcile.NewRef(role.ID, reconcile.KindRole)

	category, err := s.api.CreateChannel(ctx, serverID, platform.ChannelSpec{
		Name:       name,
		Type:       platform.ChannelCategory,
		Overwrites: platform.RestrictedTo(role.ID, everyone.ID),
	})
	if err != nil {
		return nil, s.fail(ctx, l, p, ErrCategoryCreationFailed, err)
	}
	p.Category = reconcile.NewRef(category.ID, reconcile.KindCategory)

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, s.fail(ctx, l, p, ErrPersistFailed, err)
	}

	l.Info("Place created", zap.String("place_id", p.ID), zap.Uint64("category_id", category.ID))
	return p, nil
}

// List returns the places of a server in creation order.
func (s *Service) List(ctx context.Context, serverID uint64) ([]models.Place, error) {
	places, err := s.store.ListByServer(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	return places, nil
}

func (s *Service) fail(ctx context.Context, l *zap.Logger, p *models.Place, kind, cause error) error {
	stepErr := fmt.Errorf("%w: %w", kind, cause)
	l.Warn("Place creation failed, rolling back", zap.Error(stepErr))

	if err := reconcile.Rollback(context.WithoutCancel(ctx), s.api, p.ServerID, p, &models.Place{}, l); err != nil {
		l.Error("Rollback incomplete, manual cleanup required", zap.Error(err))
		return multierr.Append(stepErr, fmt.Errorf("%w: %w", ErrRollbackFailed, err))
	}
	return stepErr
}
