package setup

import (
	"context"
	"fmt"

	"rpbot/core/platform"
	"rpbot/core/reconcile"
	"rpbot/feature/setup/models"

	"go.uber.org/zap"
)

// Translator turns translation keys into localized text.
type Translator interface {
	Translate(ctx context.Context, locale, key string) string
}

// Engine runs the setup phases against one server at a time.
type Engine struct {
	api    platform.ResourceAPI
	store  ConfigStore
	names  Translator
	logger *zap.Logger
}

// NewEngine creates a setup engine.
func NewEngine(api platform.ResourceAPI, store ConfigStore, names Translator, logger *zap.Logger) *Engine {
	return &Engine{api: api, store: store, names: names, logger: logger}
}

// run carries the state of one phase invocation.
type run struct {
	*Engine
	cfg      *models.ServerConfig
	baseline *models.ServerConfig
	locale   string
	logger   *zap.Logger
}

func (e *Engine) newRun(cfg, baseline *models.ServerConfig, locale, phase string) *run {
	return &run{
		Engine:   e,
		cfg:      cfg,
		baseline: baseline,
		locale:   locale,
		logger: e.logger.With(
			zap.String("universe_id", cfg.UniverseID),
			zap.Uint64("server_id", cfg.ServerID),
			zap.String("phase", phase),
		),
	}
}

func (r *run) name(ctx context.Context, key string) string {
	return r.names.Translate(ctx, r.locale, key)
}

// resolveRole gets or creates the role behind slot and records a new reference on it.
func (r *run) resolveRole(ctx context.Context, slot *reconcile.Ref, resource, nameKey string, perms platform.Permissions) (platform.Role, error) {
	serverID := r.cfg.ServerID
	res, err := reconcile.Resolve(ctx, resource+" role", *slot,
		func(ctx context.Context, id uint64) (platform.Role, error) {
			return r.api.GetRole(ctx, serverID, id)
		},
		func(ctx context.Context) (platform.Role, error) {
			return r.api.CreateRole(ctx, serverID, platform.RoleSpec{Name: r.name(ctx, nameKey), Permissions: perms})
		},
	)
	if err != nil {
		return platform.Role{}, err
	}
	if res.WasCreated() {
		*slot = reconcile.NewRef(res.Resource.ID, reconcile.KindRole)
	}
	r.logger.Debug("Role resolved", zap.String("role", resource), zap.Stringer("state", res.State), zap.Uint64("id", res.Resource.ID))
	return res.Resource, nil
}

// resolveChannel gets or creates the channel behind slot and records a new reference on it.
func (r *run) resolveChannel(ctx context.Context, slot *reconcile.Ref, resource, nameKey string, spec platform.ChannelSpec) (platform.Channel, error) {
	kind := reconcile.KindChannel
	if spec.Type == platform.ChannelCategory {
		kind = reconcile.KindCategory
	}

	res, err := reconcile.Resolve(ctx, resource+" "+string(kind), *slot,
		r.api.GetChannel,
		func(ctx context.Context) (platform.Channel, error) {
			spec.Name = r.name(ctx, nameKey)
			return r.api.CreateChannel(ctx, r.cfg.ServerID, spec)
		},
	)
	if err != nil {
		return platform.Channel{}, err
	}
	if res.WasCreated() {
		*slot = reconcile.NewRef(res.Resource.ID, kind)
	}
	r.logger.Debug("Channel resolved", zap.String("channel", resource), zap.Stringer("state", res.State), zap.Uint64("id", res.Resource.ID))
	return res.Resource, nil
}

// fail rolls the record back to the baseline and returns the typed error.
// A failed rollback is logged only; the caller always sees the original failure.
func (r *run) fail(ctx context.Context, kind error, resource string, cause error) error {
	setupErr := newError(kind, resource, cause)
	r.logger.Warn("Setup step failed, rolling back", zap.Error(setupErr))

	// Compensation must run even if the caller gave up
	rbCtx := context.WithoutCancel(ctx)
	if err := reconcile.Rollback(rbCtx, r.api, r.cfg.ServerID, r.cfg, r.baseline, r.logger); err != nil {
		r.logger.Error("Rollback incomplete, manual cleanup required",
			zap.Error(fmt.Errorf("%w: %w", ErrRollbackFailed, err)))
	}
	return setupErr
}

func (r *run) persist(ctx context.Context) error {
	if err := r.store.Update(ctx, r.cfg); err != nil {
		return r.fail(ctx, ErrPersistFailed, "", err)
	}
	return nil
}
