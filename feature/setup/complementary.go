package setup

import (
	"context"
	"errors"
	"sort"

	"rpbot/core/platform"
	"rpbot/core/reconcile"
	"rpbot/feature/setup/models"

	"go.uber.org/zap"
)

type channelDef struct {
	resource string
	nameKey  string
	slot     *reconcile.Ref
	spec     platform.ChannelSpec
}

// Complementary resolves the admin, non-RP and RP categories and the six channels
// nested in them, reorders the categories to the top and persists cfg. It needs
// the roles and roads category of a successful Partial setup.
func (e *Engine) Complementary(ctx context.Context, cfg, baseline *models.ServerConfig, locale string) (Token, error) {
	r := e.newRun(cfg, baseline, locale, "complementary")

	for _, ref := range []reconcile.Ref{cfg.AdminRole, cfg.ModeratorRole, cfg.SpectatorRole, cfg.PlayerRole, cfg.RoadCategory} {
		if !ref.IsSet() {
			return "", newError(ErrPreconditionFailed, "", nil)
		}
	}

	everyone, err := r.api.EveryoneRole(ctx, cfg.ServerID)
	if err != nil {
		return "", r.fail(ctx, ErrLookupFailed, "everyone", err)
	}

	categories := []channelDef{
		{"admin", keyAdminCategoryName, &cfg.AdminCategory, platform.ChannelSpec{
			Type:     platform.ChannelCategory,
			Position: 0,
			Overwrites: adminOverwrites(
				everyone.ID,
				cfg.SpectatorRole.ID,
				cfg.PlayerRole.ID,
				cfg.ModeratorRole.ID,
			),
		}},
		{"nrp", keyNonRPCategoryName, &cfg.NonRPCategory, platform.ChannelSpec{Type: platform.ChannelCategory, Position: 1}},
		{"rp", keyRPCategoryName, &cfg.RPCategory, platform.ChannelSpec{Type: platform.ChannelCategory, Position: 2}},
	}

	// Categories are independent of each other; every one is attempted and a
	// single rollback covers whichever succeeded.
	var (
		firstFailed string
		errs        []error
	)
	for _, d := range categories {
		if _, err := r.resolveChannel(ctx, d.slot, d.resource, d.nameKey, d.spec); err != nil {
			if firstFailed == "" {
				firstFailed = d.resource
			}
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return "", r.fail(ctx, ErrCategoryCreationFailed, firstFailed, errors.Join(errs...))
	}

	channels := []channelDef{
		{"log", keyLogChannelName, &cfg.LogChannel, platform.ChannelSpec{
			Type: platform.ChannelText, ParentID: cfg.AdminCategory.ID,
		}},
		{"commands", keyCommandsChannelName, &cfg.CommandsChannel, platform.ChannelSpec{
			Type: platform.ChannelText, ParentID: cfg.AdminCategory.ID,
		}},
		{"moderation", keyModerationChannelName, &cfg.ModerationChannel, platform.ChannelSpec{
			Type: platform.ChannelText, ParentID: cfg.AdminCategory.ID,
		}},
		{"nrp_general", keyGeneralChannelName, &cfg.GeneralChannel, platform.ChannelSpec{
			Type: platform.ChannelText, ParentID: cfg.NonRPCategory.ID,
		}},
		{"rp_character", keyCharacterChannelName, &cfg.CharacterChannel, platform.ChannelSpec{
			Type: platform.ChannelText, ParentID: cfg.RPCategory.ID, Overwrites: characterOverwrites(cfg.PlayerRole.ID),
		}},
		{"wiki", keyWikiChannelName, &cfg.WikiChannel, platform.ChannelSpec{
			Type: platform.ChannelForum, ParentID: cfg.RPCategory.ID,
		}},
	}

	for _, d := range channels {
		if _, err := r.resolveChannel(ctx, d.slot, d.resource, d.nameKey, d.spec); err != nil {
			return "", r.fail(ctx, ErrChannelCreationFailed, d.resource, err)
		}
	}

	r.reorderChannels(ctx)

	if err := r.persist(ctx); err != nil {
		return "", err
	}

	r.logger.Info("Complementary setup complete")
	return TokenPhaseSuccess, nil
}

// reorderChannels moves the four categories to positions 0-3. Failures are only logged.
func (r *run) reorderChannels(ctx context.Context) {
	live, err := r.api.ListChannels(ctx, r.cfg.ServerID)
	if err != nil {
		r.logger.Warn("Channel reorder skipped", zap.Error(err))
		return
	}

	leading := []uint64{r.cfg.AdminCategory.ID, r.cfg.NonRPCategory.ID, r.cfg.RPCategory.ID, r.cfg.RoadCategory.ID}
	if err := r.api.ReorderChannels(ctx, r.cfg.ServerID, channelPositions(leading, live)); err != nil {
		r.logger.Warn("Channel reorder failed", zap.Error(err))
	}
}

// channelPositions places leading at 0..n-1 and every other channel after them
// in its current relative order.
func channelPositions(leading []uint64, live []platform.Channel) []platform.Position {
	positions := make([]platform.Position, 0, len(live)+len(leading))
	taken := make(map[uint64]struct{}, len(leading))
	for i, id := range leading {
		positions = append(positions, platform.Position{ID: id, Position: i})
		taken[id] = struct{}{}
	}

	others := make([]platform.Channel, 0, len(live))
	for _, ch := range live {
		if _, ok := taken[ch.ID]; !ok {
			others = append(others, ch)
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		if others[i].Position != others[j].Position {
			return others[i].Position < others[j].Position
		}
		return others[i].ID < others[j].ID
	})

	next := len(leading)
	for _, ch := range others {
		positions = append(positions, platform.Position{ID: ch.ID, Position: next})
		next++
	}
	return positions
}
