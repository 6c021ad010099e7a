package setup

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"rpbot/core/interaction"
	"rpbot/core/platform"
	"rpbot/feature/setup/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testServerID = uint64(1000)
	testBotRole  = uint64(1001)
)

var errBoom = errors.New("boom")

func notFound() error {
	return &platform.APIError{Status: 404, Code: 10011, Message: "Unknown"}
}

// fakePlatform is an in-memory server. Rollback deletes concurrently, so every
// method takes the lock.
type fakePlatform struct {
	mu       sync.Mutex
	nextID   uint64
	roles    map[uint64]platform.Role
	channels map[uint64]platform.Channel

	createdRoles    []platform.RoleSpec
	createdChannels []platform.ChannelSpec
	deleted         []uint64
	roleReorders    [][]platform.Position
	channelReorders [][]platform.Position

	failCreateRole      func(platform.RoleSpec) error
	failCreateChannel   func(platform.ChannelSpec) error
	failReorderRoles    error
	failReorderChannels error
	failList            error
}

func newFakePlatform() *fakePlatform {
	f := &fakePlatform{
		nextID:   2000,
		roles:    make(map[uint64]platform.Role),
		channels: make(map[uint64]platform.Channel),
	}
	f.roles[testServerID] = platform.Role{ID: testServerID, Name: "@everyone", Position: 0}
	f.roles[testBotRole] = platform.Role{ID: testBotRole, Name: "rpbot", Position: 1, Managed: true}
	return f
}

func (f *fakePlatform) addRole(id uint64, name string, position int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[id] = platform.Role{ID: id, Name: name, Position: position}
}

func (f *fakePlatform) addChannel(id uint64, name string, position int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels[id] = platform.Channel{ID: id, Name: name, Type: platform.ChannelText, Position: position}
}

func (f *fakePlatform) remove(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.roles, id)
	delete(f.channels, id)
}

func (f *fakePlatform) hasRole(id uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.roles[id]
	return ok
}

func (f *fakePlatform) hasChannel(id uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.channels[id]
	return ok
}

func (f *fakePlatform) deletedIDs() []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := append([]uint64(nil), f.deleted...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakePlatform) creations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.createdRoles) + len(f.createdChannels)
}

func (f *fakePlatform) CreateRole(ctx context.Context, serverID uint64, spec platform.RoleSpec) (platform.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateRole != nil {
		if err := f.failCreateRole(spec); err != nil {
			return platform.Role{}, err
		}
	}
	f.nextID++
	role := platform.Role{ID: f.nextID, Name: spec.Name, Permissions: spec.Permissions, Position: 1}
	f.roles[role.ID] = role
	f.createdRoles = append(f.createdRoles, spec)
	return role, nil
}

func (f *fakePlatform) GetRole(ctx context.Context, serverID, roleID uint64) (platform.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[roleID]
	if !ok {
		return platform.Role{}, notFound()
	}
	return role, nil
}

func (f *fakePlatform) DeleteRole(ctx context.Context, serverID, roleID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roles[roleID]; !ok {
		return notFound()
	}
	delete(f.roles, roleID)
	f.deleted = append(f.deleted, roleID)
	return nil
}

func (f *fakePlatform) CreateChannel(ctx context.Context, serverID uint64, spec platform.ChannelSpec) (platform.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateChannel != nil {
		if err := f.failCreateChannel(spec); err != nil {
			return platform.Channel{}, err
		}
	}
	if spec.Type != platform.ChannelCategory && spec.ParentID != 0 {
		if _, ok := f.channels[spec.ParentID]; !ok {
			return platform.Channel{}, notFound()
		}
	}
	f.nextID++
	ch := platform.Channel{
		ID:         f.nextID,
		Name:       spec.Name,
		Type:       spec.Type,
		Position:   spec.Position,
		ParentID:   spec.ParentID,
		Overwrites: spec.Overwrites,
	}
	f.channels[ch.ID] = ch
	f.createdChannels = append(f.createdChannels, spec)
	return ch, nil
}

func (f *fakePlatform) GetChannel(ctx context.Context, channelID uint64) (platform.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[channelID]
	if !ok {
		return platform.Channel{}, notFound()
	}
	return ch, nil
}

func (f *fakePlatform) DeleteChannel(ctx context.Context, channelID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.channels[channelID]; !ok {
		return notFound()
	}
	delete(f.channels, channelID)
	f.deleted = append(f.deleted, channelID)
	return nil
}

func (f *fakePlatform) ReorderRoles(ctx context.Context, serverID uint64, positions []platform.Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleReorders = append(f.roleReorders, positions)
	if f.failReorderRoles != nil {
		return f.failReorderRoles
	}
	for _, p := range positions {
		if role, ok := f.roles[p.ID]; ok {
			role.Position = p.Position
			f.roles[p.ID] = role
		}
	}
	return nil
}

func (f *fakePlatform) ReorderChannels(ctx context.Context, serverID uint64, positions []platform.Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channelReorders = append(f.channelReorders, positions)
	return f.failReorderChannels
}

func (f *fakePlatform) ListRoles(ctx context.Context, serverID uint64) ([]platform.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	roles := make([]platform.Role, 0, len(f.roles))
	for _, r := range f.roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles, nil
}

func (f *fakePlatform) ListChannels(ctx context.Context, serverID uint64) ([]platform.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	channels := make([]platform.Channel, 0, len(f.channels))
	for _, c := range f.channels {
		channels = append(channels, c)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i].ID < channels[j].ID })
	return channels, nil
}

func (f *fakePlatform) EveryoneRole(ctx context.Context, serverID uint64) (platform.Role, error) {
	return f.GetRole(ctx, serverID, serverID)
}

func (f *fakePlatform) BotRole(ctx context.Context, serverID uint64) (platform.Role, error) {
	return f.GetRole(ctx, serverID, testBotRole)
}

// keyNames translates every key to itself.
type keyNames struct{}

func (keyNames) Translate(ctx context.Context, locale, key string) string {
	return key
}

// countingStore counts updates and can be told to fail them.
type countingStore struct {
	ConfigStore
	mu         sync.Mutex
	updates    int
	failUpdate error
}

func (s *countingStore) Update(ctx context.Context, cfg *models.ServerConfig) error {
	s.mu.Lock()
	s.updates++
	fail := s.failUpdate
	s.mu.Unlock()
	if fail != nil {
		return fail
	}
	return s.ConfigStore.Update(ctx, cfg)
}

func (s *countingStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

type stubConfirmer struct {
	choice  interaction.Choice
	err     error
	calls   int
	prompts []interaction.Prompt
}

func (c *stubConfirmer) Confirm(ctx context.Context, p interaction.Prompt) (interaction.Choice, error) {
	c.calls++
	c.prompts = append(c.prompts, p)
	return c.choice, c.err
}

type fixture struct {
	api    *fakePlatform
	store  *countingStore
	engine *Engine
	cfg    *models.ServerConfig
}

// newFixture links testServerID to a fresh record.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := newFakePlatform()
	store := &countingStore{ConfigStore: setupTestStore(t)}

	cfg := &models.ServerConfig{UniverseID: "universe-1", ServerID: testServerID}
	_, err := store.Insert(context.Background(), cfg)
	require.NoError(t, err)

	return &fixture{
		api:    api,
		store:  store,
		engine: NewEngine(api, store, keyNames{}, zap.NewNop()),
		cfg:    cfg,
	}
}

func (fx *fixture) load(t *testing.T) *models.ServerConfig {
	t.Helper()
	cfg, err := fx.store.GetByServerID(context.Background(), testServerID)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return cfg
}
