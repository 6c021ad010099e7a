package interaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rpbot/core/platform"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Choice is the answer given to a confirmation prompt.
type Choice int

const (
	Cancel Choice = iota
	Continue
)

const (
	cancelAction   = "cancel"
	continueAction = "continue"
)

// Prompt describes a confirm/cancel question scoped to one user in one channel.
type Prompt struct {
	UserID        uint64
	ChannelID     uint64
	Content       string
	CancelLabel   string
	ContinueLabel string
}

// Gate posts a two-button prompt and waits for the invoking user to click one.
type Gate struct {
	messenger platform.Messenger
	collector *Collector
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGate creates a gate answering within timeout.
func NewGate(messenger platform.Messenger, collector *Collector, timeout time.Duration, logger *zap.Logger) *Gate {
	return &Gate{messenger: messenger, collector: collector, timeout: timeout, logger: logger}
}

// Confirm posts p and blocks until the user answers or the gate times out.
// The prompt is deleted in every case once posted.
func (g *Gate) Confirm(ctx context.Context, p Prompt) (Choice, error) {
	nonce := uuid.NewString()
	buttons := []platform.Button{
		{CustomID: customID(nonce, cancelAction), Label: p.CancelLabel, Style: platform.ButtonDanger},
		{CustomID: customID(nonce, continueAction), Label: p.ContinueLabel, Style: platform.ButtonSuccess},
	}

	messageID, err := g.messenger.SendPrompt(ctx, p.ChannelID, p.Content, buttons)
	if err != nil {
		return Cancel, fmt.Errorf("failed to send prompt: %w", err)
	}
	defer g.deletePrompt(p.ChannelID, messageID)

	filter := func(ev Event) bool {
		return ev.UserID == p.UserID && ev.ChannelID == p.ChannelID && strings.HasPrefix(ev.CustomID, nonce+":")
	}

	ev, err := g.collector.Await(ctx, filter, g.timeout)
	if err != nil {
		return Cancel, err
	}
	if strings.HasSuffix(ev.CustomID, ":"+continueAction) {
		return Continue, nil
	}
	return Cancel, nil
}

func (g *Gate) deletePrompt(channelID, messageID uint64) {
	// The caller's context may already be done on timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := g.messenger.DeleteMessage(ctx, channelID, messageID); err != nil {
		g.logger.Warn("Failed to delete prompt", zap.Uint64("message_id", messageID), zap.Error(err))
	}
}

func customID(nonce, action string) string {
	return nonce + ":" + action
}
