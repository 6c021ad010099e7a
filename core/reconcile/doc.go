// Package reconcile provides the building blocks for provisioning platform
// resources against a persisted record without a native transaction.
//
// A record exposes its reference fields as Slots. Each Ref is a remote id plus a
// Kind that decides how the resource is deleted; two refs are the same when their
// ids match.
//
// # Components
//
// 1. Resolve: idempotent get-or-create. A stored ref that still resolves yields
// an Existing resolution and leaves the record alone; an unset or stale ref
// triggers creation and a Created resolution the caller must write back.
//
// 2. Snapshot: lists live roles and channels once (two concurrent reads) and
// resets every slot whose resource has vanished. The validated copy is the
// rollback baseline.
//
// 3. Rollback: diffs a record against its baseline. Every differing slot has its
// current resource deleted and is reset to the baseline value. Deletions fan out
// concurrently, never short-circuit, and their failures are combined with multierr.
//
// # Usage Example
//
//	baseline := cfg.Clone()
//	if err := reconcile.Snapshot(ctx, api, cfg.ServerID, baseline); err != nil {
//	    return err
//	}
//
//	res, err := reconcile.Resolve(ctx, "admin role", cfg.AdminRole, fetchRole, createRole)
//	if err != nil {
//	    _ = reconcile.Rollback(ctx, api, cfg.ServerID, cfg, baseline, logger)
//	    return err
//	}
//	if res.WasCreated() {
//	    cfg.AdminRole = reconcile.NewRef(res.Resource.ID, reconcile.KindRole)
//	}
package reconcile
