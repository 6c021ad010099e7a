package setup

import (
	"context"

	"rpbot/core/reconcile"
	"rpbot/feature/setup/models"
)

// Full runs Partial then Complementary. After Partial commits, the baseline is
// refreshed from the live state so a Complementary failure only undoes its own
// resources and leaves the roles and roads category in place.
func (e *Engine) Full(ctx context.Context, cfg, baseline *models.ServerConfig, locale string) (Token, error) {
	if _, err := e.Partial(ctx, cfg, baseline, locale); err != nil {
		return "", err
	}

	refreshed := cfg.Clone()
	if err := reconcile.Snapshot(ctx, e.api, cfg.ServerID, refreshed); err != nil {
		return "", newError(ErrLookupFailed, "snapshot", err)
	}

	return e.Complementary(ctx, cfg, refreshed, locale)
}
