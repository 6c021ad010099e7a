package mocks

import (
	"context"

	"rpbot/core/platform"

	"github.com/stretchr/testify/mock"
)

// ResourceAPI is a mock implementation of platform.ResourceAPI
type ResourceAPI struct {
	mock.Mock
}

func (m *ResourceAPI) CreateRole(ctx context.Context, serverID uint64, spec platform.RoleSpec) (platform.Role, error) {
	args := m.Called(ctx, serverID, spec)
	return args.Get(0).(platform.Role), args.Error(1)
}

func (m *ResourceAPI) GetRole(ctx context.Context, serverID, roleID uint64) (platform.Role, error) {
	args := m.Called(ctx, serverID, roleID)
	return args.Get(0).(platform.Role), args.Error(1)
}

func (m *ResourceAPI) DeleteRole(ctx context.Context, serverID, roleID uint64) error {
	args := m.Called(ctx, serverID, roleID)
	return args.Error(0)
}

func (m *ResourceAPI) CreateChannel(ctx context.Context, serverID uint64, spec platform.ChannelSpec) (platform.Channel, error) {
	args := m.Called(ctx, serverID, spec)
	return args.Get(0).(platform.Channel), args.Error(1)
}

func (m *ResourceAPI) GetChannel(ctx context.Context, channelID uint64) (platform.Channel, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(platform.Channel), args.Error(1)
}

func (m *ResourceAPI) DeleteChannel(ctx context.Context, channelID uint64) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

func (m *ResourceAPI) ReorderRoles(ctx context.Context, serverID uint64, positions []platform.Position) error {
	args := m.Called(ctx, serverID, positions)
	return args.Error(0)
}

func (m *ResourceAPI) ReorderChannels(ctx context.Context, serverID uint64, positions []platform.Position) error {
	args := m.Called(ctx, serverID, positions)
	return args.Error(0)
}

func (m *ResourceAPI) ListRoles(ctx context.Context, serverID uint64) ([]platform.Role, error) {
	args := m.Called(ctx, serverID)
	if roles, ok := args.Get(0).([]platform.Role); ok {
		return roles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceAPI) ListChannels(ctx context.Context, serverID uint64) ([]platform.Channel, error) {
	args := m.Called(ctx, serverID)
	if channels, ok := args.Get(0).([]platform.Channel); ok {
		return channels, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ResourceAPI) EveryoneRole(ctx context.Context, serverID uint64) (platform.Role, error) {
	args := m.Called(ctx, serverID)
	return args.Get(0).(platform.Role), args.Error(1)
}

func (m *ResourceAPI) BotRole(ctx context.Context, serverID uint64) (platform.Role, error) {
	args := m.Called(ctx, serverID)
	return args.Get(0).(platform.Role), args.Error(1)
}

// Messenger is a mock implementation of platform.Messenger
type Messenger struct {
	mock.Mock
}

func (m *Messenger) SendPrompt(ctx context.Context, channelID uint64, content string, buttons []platform.Button) (uint64, error) {
	args := m.Called(ctx, channelID, content, buttons)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Messenger) DeleteMessage(ctx context.Context, channelID, messageID uint64) error {
	args := m.Called(ctx, channelID, messageID)
	return args.Error(0)
}
