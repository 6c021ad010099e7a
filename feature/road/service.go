package road

import (
	"context"
	"fmt"

	"rpbot/core/platform"
	"rpbot/core/reconcile"
	placeModels "rpbot/feature/place/models"
	"rpbot/feature/road/models"
	"rpbot/feature/setup"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PlaceFinder resolves a place by the id of its category.
type PlaceFinder interface {
	// GetByCategory returns nil without error when the universe has no such place.
	GetByCategory(ctx context.Context, universeID string, categoryID uint64) (*placeModels.Place, error)
}

// Request describes a road to build.
type Request struct {
	ServerID uint64
	// PlaceOne and PlaceTwo are the category ids of the places to connect.
	PlaceOne uint64
	PlaceTwo uint64
	Distance uint64
}

// Service creates roads between places.
type Service struct {
	store   Store
	places  PlaceFinder
	servers setup.ConfigStore
	api     platform.ResourceAPI
	logger  *zap.Logger
}

// NewService creates a new road service.
func NewService(store Store, places PlaceFinder, servers setup.ConfigStore, api platform.ResourceAPI, logger *zap.Logger) *Service {
	return &Service{store: store, places: places, servers: servers, api: api, logger: logger}
}

// Create makes the role and the channel of a road between two places of the
// server's universe, then records it. The channel lives under the roads category
// of the server and only the road role sees it. If a step fails, whatever was
// created is deleted.
func (s *Service) Create(ctx context.Context, req Request) (*models.Road, error) {
	if req.PlaceOne == req.PlaceTwo {
		return nil, ErrSamePlace
	}

	server, err := s.servers.GetByServerID(ctx, req.ServerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	if server == nil {
		return nil, fmt.Errorf("%w: %d", ErrServerNotFound, req.ServerID)
	}
	if !server.RoadCategory.IsSet() {
		return nil, fmt.Errorf("%w: server %d", ErrServerNotSetUp, req.ServerID)
	}

	one, two, err := s.endpoints(ctx, server.UniverseID, req.PlaceOne, req.PlaceTwo)
	if err != nil {
		return nil, err
	}

	name := one.Name + "-" + two.Name
	l := s.logger.With(zap.Uint64("server_id", req.ServerID), zap.String("road", name))

	everyone, err := s.api.EveryoneRole(ctx, req.ServerID)
	if err != nil {
		return nil, fmt.Errorf("%w: everyone role: %w", ErrLookupFailed, err)
	}

	r := &models.Road{
		UniverseID: server.UniverseID,
		ServerID:   req.ServerID,
		Name:       name,
		PlaceOneID: one.Category.ID,
		PlaceTwoID: two.Category.ID,
		Distance:   req.Distance,
	}

	role, err := s.api.CreateRole(ctx, req.ServerID, platform.RoleSpec{Name: name})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoleCreationFailed, err)
	}
	r.Role = reconcile.NewRef(role.ID, reconcile.KindRole)

	channel, err := s.api.CreateChannel(ctx, req.ServerID, platform.ChannelSpec{
		Name:       name,
		Type:       platform.ChannelText,
		ParentID:   server.RoadCategory.ID,
		Overwrites: platform.RestrictedTo(role.ID, everyone.ID),
	})
	if err != nil {
		return nil, s.fail(ctx, l, r, ErrChannelCreationFailed, err)
	}
	r.Channel = reconcile.NewRef(channel.ID, reconcile.KindChannel)

	if err := s.store.Insert(ctx, r); err != nil {
		return nil, s.fail(ctx, l, r, ErrPersistFailed, err)
	}

	l.Info("Road created", zap.String("road_id", r.ID), zap.Uint64("channel_id", channel.ID), zap.Uint64("distance", r.Distance))
	return r, nil
}

// List returns the roads of a server in creation order.
func (s *Service) List(ctx context.Context, serverID uint64) ([]models.Road, error) {
	roads, err := s.store.ListByServer(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	return roads, nil
}

// endpoints loads both places concurrently.
func (s *Service) endpoints(ctx context.Context, universeID string, oneID, twoID uint64) (*placeModels.Place, *placeModels.Place, error) {
	var one, two *placeModels.Place
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		one, err = s.places.GetByCategory(gctx, universeID, oneID)
		return err
	})
	g.Go(func() error {
		var err error
		two, err = s.places.GetByCategory(gctx, universeID, twoID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	if one == nil {
		return nil, nil, fmt.Errorf("%w: %d", ErrPlaceOneNotFound, oneID)
	}
	if two == nil {
		return nil, nil, fmt.Errorf("%w: %d", ErrPlaceTwoNotFound, twoID)
	}
	return one, two, nil
}

func (s *Service) fail(ctx context.Context, l *zap.Logger, r *models.Road, kind, cause error) error {
	stepErr := fmt.Errorf("%w: %w", kind, cause)
	l.Warn("Road creation failed, rolling back", zap.Error(stepErr))

	if err := reconcile.Rollback(context.WithoutCancel(ctx), s.api, r.ServerID, r, &models.Road{}, l); err != nil {
		l.Error("Rollback incomplete, manual cleanup required", zap.Error(err))
		return multierr.Append(stepErr, fmt.Errorf("%w: %w", ErrRollbackFailed, err))
	}
	return stepErr
}
