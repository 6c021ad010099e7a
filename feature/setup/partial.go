package setup

import (
	"context"
	"sort"

	"rpbot/core/platform"
	"rpbot/core/reconcile"
	"rpbot/feature/setup/models"
)

// Fixed role hierarchy; pre-existing roles are placed above the bot's role.
const (
	playerPosition    = 1
	spectatorPosition = 2
	moderatorPosition = 3
	adminPosition     = 4
	botPosition       = 5
)

type roleDef struct {
	resource string
	nameKey  string
	perms    platform.Permissions
	slot     *reconcile.Ref
	position int
}

// Partial resolves the four role tiers and the roads category, reorders the
// roles and persists cfg. On failure everything that differs from baseline is
// deleted and cfg is reverted to it.
func (e *Engine) Partial(ctx context.Context, cfg, baseline *models.ServerConfig, locale string) (Token, error) {
	r := e.newRun(cfg, baseline, locale, "partial")
	serverID := cfg.ServerID

	everyone, err := r.api.EveryoneRole(ctx, serverID)
	if err != nil {
		return "", r.fail(ctx, ErrLookupFailed, "everyone", err)
	}

	existing, err := r.api.ListRoles(ctx, serverID)
	if err != nil {
		return "", r.fail(ctx, ErrLookupFailed, "roles", err)
	}

	defs := []roleDef{
		{"admin", keyAdminRoleName, adminRolePermissions, &cfg.AdminRole, adminPosition},
		{"moderator", keyModeratorRoleName, moderatorRolePermissions, &cfg.ModeratorRole, moderatorPosition},
		{"spectator", keySpectatorRoleName, spectatorRolePermissions, &cfg.SpectatorRole, spectatorPosition},
		{"player", keyPlayerRoleName, playerRolePermissions, &cfg.PlayerRole, playerPosition},
	}

	resolved := make(map[string]platform.Role, len(defs))
	for _, d := range defs {
		role, err := r.resolveRole(ctx, d.slot, d.resource, d.nameKey, d.perms)
		if err != nil {
			return "", r.fail(ctx, ErrRoleCreationFailed, d.resource, err)
		}
		resolved[d.resource] = role
	}

	bot, err := r.api.BotRole(ctx, serverID)
	if err != nil {
		return "", r.fail(ctx, ErrReorderFailed, "", err)
	}

	positions := rolePositions(defs, resolved, bot, everyone, existing)
	if err := r.api.ReorderRoles(ctx, serverID, positions); err != nil {
		return "", r.fail(ctx, ErrReorderFailed, "", err)
	}

	_, err = r.resolveChannel(ctx, &cfg.RoadCategory, "road", keyRoadCategoryName, platform.ChannelSpec{
		Type: platform.ChannelCategory,
		Overwrites: roadOverwrites(
			everyone.ID,
			resolved["player"].ID,
			resolved["spectator"].ID,
			resolved["moderator"].ID,
		),
	})
	if err != nil {
		return "", r.fail(ctx, ErrCategoryCreationFailed, "road", err)
	}

	if err := r.persist(ctx); err != nil {
		return "", err
	}

	r.logger.Info("Partial setup complete")
	return TokenPhaseSuccess, nil
}

// rolePositions builds the single reorder request: managed tiers at fixed
// positions, the bot above them, every other role above the bot keeping its
// relative order. The everyone role is never moved.
func rolePositions(defs []roleDef, resolved map[string]platform.Role, bot, everyone platform.Role, existing []platform.Role) []platform.Position {
	positions := make([]platform.Position, 0, len(existing)+len(defs)+1)
	taken := map[uint64]struct{}{everyone.ID: {}, bot.ID: {}}

	for _, d := range defs {
		id := resolved[d.resource].ID
		positions = append(positions, platform.Position{ID: id, Position: d.position})
		taken[id] = struct{}{}
	}
	positions = append(positions, platform.Position{ID: bot.ID, Position: botPosition})

	others := make([]platform.Role, 0, len(existing))
	for _, role := range existing {
		if _, ok := taken[role.ID]; ok {
			continue
		}
		others = append(others, role)
	}
	sort.SliceStable(others, func(i, j int) bool {
		if others[i].Position != others[j].Position {
			return others[i].Position < others[j].Position
		}
		return others[i].ID < others[j].ID
	})

	next := botPosition + 1
	for _, role := range others {
		positions = append(positions, platform.Position{ID: role.ID, Position: next})
		next++
	}
	return positions
}
