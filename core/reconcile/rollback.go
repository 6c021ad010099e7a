package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rpbot/core/platform"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Rollback reverts live to baseline. For every slot whose reference differs the
// current resource is deleted and the slot is reset to the baseline value.
// Deletions run concurrently and never stop the sweep; their failures are logged
// and returned combined. A resource that is already gone counts as deleted.
func Rollback(ctx context.Context, api platform.ResourceAPI, serverID uint64, live, baseline Record, logger *zap.Logger) error {
	liveSlots := live.Slots()
	baseSlots := baseline.Slots()
	if len(liveSlots) != len(baseSlots) {
		return fmt.Errorf("rollback: record shapes differ (%d vs %d slots)", len(liveSlots), len(baseSlots))
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)

	for i, s := range liveSlots {
		base := *baseSlots[i].Ref
		current := *s.Ref
		if current.Same(base) {
			continue
		}
		*s.Ref = base

		if !current.IsSet() {
			continue
		}

		wg.Add(1)
		go func(field string, ref Ref) {
			defer wg.Done()
			l := logger.With(zap.String("field", field), zap.Uint64("resource_id", ref.ID), zap.String("kind", string(ref.Kind)))

			err := deleteRef(ctx, api, serverID, ref)
			if errors.Is(err, platform.ErrNotFound) {
				l.Debug("Rollback target already gone")
				return
			}
			if err != nil {
				l.Error("Rollback delete failed", zap.Error(err))
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", field, err))
				mu.Unlock()
				return
			}
			l.Info("Rolled back resource")
		}(s.Name, current)
	}

	wg.Wait()
	return errs
}

func deleteRef(ctx context.Context, api platform.ResourceAPI, serverID uint64, ref Ref) error {
	if ref.IsRole() {
		return api.DeleteRole(ctx, serverID, ref.ID)
	}
	return api.DeleteChannel(ctx, ref.ID)
}
