package platform

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is matched by errors for resources that do not exist on the platform.
var ErrNotFound = errors.New("resource not found")

// APIError is a non-2xx answer from the platform.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform error %d (code %d): %s", e.Status, e.Code, e.Message)
}

// Is makes a 404 answer match ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// ResourceAPI manages roles and channels of a server.
// Every call is a single request; no retries are performed.
type ResourceAPI interface {
	CreateRole(ctx context.Context, serverID uint64, spec RoleSpec) (Role, error)
	GetRole(ctx context.Context, serverID, roleID uint64) (Role, error)
	DeleteRole(ctx context.Context, serverID, roleID uint64) error
	CreateChannel(ctx context.Context, serverID uint64, spec ChannelSpec) (Channel, error)
	GetChannel(ctx context.Context, channelID uint64) (Channel, error)
	DeleteChannel(ctx context.Context, channelID uint64) error
	ReorderRoles(ctx context.Context, serverID uint64, positions []Position) error
	ReorderChannels(ctx context.Context, serverID uint64, positions []Position) error
	ListRoles(ctx context.Context, serverID uint64) ([]Role, error)
	ListChannels(ctx context.Context, serverID uint64) ([]Channel, error)
	// EveryoneRole returns the implicit role every member holds.
	EveryoneRole(ctx context.Context, serverID uint64) (Role, error)
	// BotRole returns the highest role held by the bot itself.
	BotRole(ctx context.Context, serverID uint64) (Role, error)
}

// Messenger posts and removes interactive prompts.
type Messenger interface {
	SendPrompt(ctx context.Context, channelID uint64, content string, buttons []Button) (uint64, error)
	DeleteMessage(ctx context.Context, channelID, messageID uint64) error
}
