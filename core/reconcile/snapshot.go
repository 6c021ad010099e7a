package reconcile

import (
	"context"
	"fmt"

	"rpbot/core/platform"

	"golang.org/x/sync/errgroup"
)

// Snapshot validates rec against the live state of the server in place: every
// slot whose resource no longer exists is reset. Callers pass a copy of the
// record they intend to mutate so the result can serve as rollback baseline.
func Snapshot(ctx context.Context, api platform.ResourceAPI, serverID uint64, rec Record) error {
	var (
		roles    []platform.Role
		channels []platform.Channel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roles, err = api.ListRoles(gctx, serverID)
		if err != nil {
			return fmt.Errorf("failed to list roles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		channels, err = api.ListChannels(gctx, serverID)
		if err != nil {
			return fmt.Errorf("failed to list channels: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	liveRoles := make(map[uint64]struct{}, len(roles))
	for _, r := range roles {
		liveRoles[r.ID] = struct{}{}
	}
	liveChannels := make(map[uint64]struct{}, len(channels))
	for _, c := range channels {
		liveChannels[c.ID] = struct{}{}
	}

	for _, s := range rec.Slots() {
		if !s.Ref.IsSet() {
			continue
		}
		live := liveChannels
		if s.Ref.IsRole() {
			live = liveRoles
		}
		if _, ok := live[s.Ref.ID]; !ok {
			*s.Ref = Ref{}
		}
	}
	return nil
}
