package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rpbot/core/interaction"
	"rpbot/core/reconcile"
	"rpbot/feature/setup/models"

	"go.uber.org/zap"
)

// Mode selects which phases a setup run dispatches to.
type Mode string

const (
	ModeFull    Mode = "full"
	ModePartial Mode = "partial"
)

// ParseMode parses a mode name, defaulting to full when s is empty.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFull:
		return ModeFull, nil
	case ModePartial:
		return ModePartial, nil
	default:
		return "", fmt.Errorf("unknown setup mode %q", s)
	}
}

// Request is one setup invocation.
type Request struct {
	ServerID  uint64
	UserID    uint64
	ChannelID uint64
	Mode      Mode
	Locale    string
}

// Confirmer asks the invoking user whether an existing setup may be overwritten.
type Confirmer interface {
	Confirm(ctx context.Context, p interaction.Prompt) (interaction.Choice, error)
}

// Orchestrator is the entry point of a setup run.
type Orchestrator struct {
	engine    *Engine
	confirmer Confirmer
	logger    *zap.Logger
}

// NewOrchestrator creates an orchestrator dispatching to engine.
func NewOrchestrator(engine *Engine, confirmer Confirmer, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{engine: engine, confirmer: confirmer, logger: logger}
}

// Run loads the server record, asks for confirmation when anything was provisioned
// before, dispatches to the requested phases and saves the record one last time.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Token, error) {
	logger := o.logger.With(
		zap.Uint64("server_id", req.ServerID),
		zap.Uint64("user_id", req.UserID),
		zap.String("mode", string(req.Mode)),
	)

	cfg, err := o.engine.store.GetByServerID(ctx, req.ServerID)
	if err != nil {
		return "", newError(ErrLookupFailed, "server", err)
	}
	if cfg == nil {
		return "", newError(ErrServerNotFound, "", nil)
	}
	logger = logger.With(zap.String("universe_id", cfg.UniverseID))

	baseline := cfg.Clone()
	if err := reconcile.Snapshot(ctx, o.engine.api, cfg.ServerID, baseline); err != nil {
		return "", newError(ErrLookupFailed, "snapshot", err)
	}

	// Gate on the stored record, not the snapshot: a ref to a deleted resource
	// still means the server was set up before.
	if reconcile.AnySet(cfg) {
		choice, err := o.confirmer.Confirm(ctx, o.prompt(ctx, req))
		if errors.Is(err, interaction.ErrTimeout) {
			logger.Info("Setup confirmation timed out")
			return "", newError(ErrTimeout, "", nil)
		}
		if err != nil {
			return "", newError(ErrConfirmFailed, "", err)
		}
		if choice == interaction.Cancel {
			logger.Info("Setup cancelled by user")
			return TokenCancelled, nil
		}
	}

	// Dispatch runs to completion once started
	ctx = context.WithoutCancel(ctx)

	logger.Info("Setup started")
	_, runErr := o.dispatch(ctx, req, cfg, baseline)

	if err := o.engine.store.Update(ctx, cfg); err != nil {
		if runErr != nil {
			logger.Error("Final save failed", zap.Error(err))
		} else {
			runErr = newError(ErrPersistFailed, "", err)
		}
	}

	if runErr != nil {
		logger.Warn("Setup failed", zap.Error(runErr), zap.String("key", Key(runErr)))
		return "", runErr
	}

	logger.Info("Setup finished")
	return TokenServerSuccess, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, req Request, cfg, baseline *models.ServerConfig) (Token, error) {
	if req.Mode == ModePartial {
		return o.engine.Partial(ctx, cfg, baseline, req.Locale)
	}
	return o.engine.Full(ctx, cfg, baseline, req.Locale)
}

func (o *Orchestrator) prompt(ctx context.Context, req Request) interaction.Prompt {
	names := o.engine.names
	return interaction.Prompt{
		UserID:        req.UserID,
		ChannelID:     req.ChannelID,
		Content:       names.Translate(ctx, req.Locale, keyConfirmMessage),
		CancelLabel:   names.Translate(ctx, req.Locale, keyCancelLabel),
		ContinueLabel: names.Translate(ctx, req.Locale, keyContinueLabel),
	}
}
