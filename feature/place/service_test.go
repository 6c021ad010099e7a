package place

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"rpbot/core/database"
	"rpbot/core/platform"
	"rpbot/core/platform/mocks"
	"rpbot/feature/place/models"
	"rpbot/feature/setup"
	setupModels "rpbot/feature/setup/models"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testServerID   uint64 = 100
	testUniverseID        = "universe-1"
)

var errBoom = errors.New("boom")

type keyNames struct{}

func (keyNames) Translate(_ context.Context, _, key string) string { return key }

type failingStore struct {
	Store
	err error
}

func (s failingStore) Insert(context.Context, *models.Place) error { return s.err }

type testEnv struct {
	service *Service
	store   *GormStore
	api     *mocks.ResourceAPI
}

func setupTestService(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := NewGormStore(db)
	require.NoError(t, store.Migrate())
	servers := setup.NewGormStore(db)
	require.NoError(t, servers.Migrate())
	_, err = servers.Insert(context.Background(), &setupModels.ServerConfig{UniverseID: testUniverseID, ServerID: testServerID})
	require.NoError(t, err)

	api := new(mocks.ResourceAPI)
	return &testEnv{
		service: NewService(store, servers, api, zap.NewNop()),
		store:   store,
		api:     api,
	}
}

func restrictedCategory(name string, roleID uint64) any {
	return mock.MatchedBy(func(spec platform.ChannelSpec) bool {
		return spec.Name == name &&
			spec.Type == platform.ChannelCategory &&
			assert.ObjectsAreEqual(platform.RestrictedTo(roleID, testServerID), spec.Overwrites)
	})
}

func expectRoleAndCategory(env *testEnv, categoryErr error) {
	env.api.On("EveryoneRole", mock.Anything, testServerID).Return(platform.Role{ID: testServerID}, nil)
	env.api.On("CreateRole", mock.Anything, testServerID, platform.RoleSpec{Name: "Harbor"}).Return(platform.Role{ID: 11, Name: "Harbor"}, nil).Once()
	if categoryErr != nil {
		env.api.On("CreateChannel", mock.Anything, testServerID, restrictedCategory("Harbor", 11)).Return(platform.Channel{}, categoryErr).Once()
		return
	}
	env.api.On("CreateChannel", mock.Anything, testServerID, restrictedCategory("Harbor", 11)).Return(platform.Channel{ID: 21, Name: "Harbor", Type: platform.ChannelCategory}, nil).Once()
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := setupTestService(t)
		expectRoleAndCategory(env, nil)

		p, err := env.service.Create(ctx, testServerID, "  Harbor ")
		require.NoError(t, err)
		env.api.AssertExpectations(t)
		assert.Equal(t, uint64(11), p.Role.ID)
		assert.Equal(t, uint64(21), p.Category.ID)

		stored, err := env.store.GetByCategory(ctx, testUniverseID, 21)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Harbor", stored.Name)
		assert.Equal(t, testServerID, stored.ServerID)
		assert.True(t, stored.Role.IsRole())

		other, err := env.store.GetByCategory(ctx, "universe-2", 21)
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("InvalidName", func(t *testing.T) {
		env := setupTestService(t)
		_, err := env.service.Create(ctx, testServerID, "   ")
		assert.ErrorIs(t, err, ErrInvalidName)
		env.api.AssertNotCalled(t, "CreateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ServerNotLinked", func(t *testing.T) {
		env := setupTestService(t)
		_, err := env.service.Create(ctx, 42, "Harbor")
		assert.ErrorIs(t, err, ErrServerNotFound)
		assert.Equal(t, "create_place__server_not_found", Key(err))
	})

	t.Run("RoleFailsNothingToUndo", func(t *testing.T) {
		env := setupTestService(t)
		env.api.On("EveryoneRole", mock.Anything, testServerID).Return(platform.Role{ID: testServerID}, nil)
		env.api.On("CreateRole", mock.Anything, testServerID, mock.Anything).Return(platform.Role{}, errBoom)

		_, err := env.service.Create(ctx, testServerID, "Harbor")
		assert.ErrorIs(t, err, ErrRoleCreationFailed)
		assert.Equal(t, "create_place__role_not_created", Key(err))
		env.api.AssertNotCalled(t, "DeleteRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CategoryFailsDeletesRole", func(t *testing.T) {
		env := setupTestService(t)
		expectRoleAndCategory(env, errBoom)
		env.api.On("DeleteRole", mock.Anything, testServerID, uint64(11)).Return(nil).Once()

		_, err := env.service.Create(ctx, testServerID, "Harbor")
		assert.ErrorIs(t, err, ErrCategoryCreationFailed)
		assert.NotErrorIs(t, err, ErrRollbackFailed)
		assert.Equal(t, "create_place__rollback_complete", Key(err))
		env.api.AssertExpectations(t)
	})

	t.Run("RollbackFails", func(t *testing.T) {
		env := setupTestService(t)
		expectRoleAndCategory(env, errBoom)
		env.api.On("DeleteRole", mock.Anything, testServerID, uint64(11)).Return(errors.New("forbidden"))

		_, err := env.service.Create(ctx, testServerID, "Harbor")
		assert.ErrorIs(t, err, ErrCategoryCreationFailed)
		assert.ErrorIs(t, err, ErrRollbackFailed)
		assert.Equal(t, "create_role__rollback_failed", Key(err))
	})

	t.Run("PersistFailsDeletesBoth", func(t *testing.T) {
		env := setupTestService(t)
		env.service.store = failingStore{Store: env.store, err: errBoom}
		expectRoleAndCategory(env, nil)
		env.api.On("DeleteRole", mock.Anything, testServerID, uint64(11)).Return(nil).Once()
		env.api.On("DeleteChannel", mock.Anything, uint64(21)).Return(nil).Once()

		_, err := env.service.Create(ctx, testServerID, "Harbor")
		assert.ErrorIs(t, err, ErrPersistFailed)
		assert.Equal(t, "create_place__rollback_complete", Key(err))
		env.api.AssertExpectations(t)

		stored, err := env.store.GetByCategory(ctx, testUniverseID, 21)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

func TestHandler(t *testing.T) {
	env := setupTestService(t)
	feature := NewFeature(env.service, keyNames{}, zap.NewNop())
	assert.Equal(t, "place", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	do := func(method, path, body string) (int, []byte) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, raw
	}

	expectRoleAndCategory(env, nil)
	status, raw := do("POST", "/servers/100/places", `{"name":"Harbor"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	var created map[string]any
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, TokenSuccess, created["token"])
	assert.Equal(t, "Harbor", created["name"])

	status, _ = do("POST", "/servers/100/places", `{"name":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = do("POST", "/servers/42/places", `{"name":"Harbor"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = do("POST", "/servers/abc/places", `{"name":"Harbor"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, raw = do("GET", "/servers/100/places", "")
	assert.Equal(t, fiber.StatusOK, status)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Harbor", listed[0]["name"])
}

func TestKey(t *testing.T) {
	assert.Equal(t, TokenSuccess, Key(nil))
	assert.Equal(t, "create_place__database_not_found", Key(ErrStoreFailed))
	assert.Equal(t, "create_place__failed", Key(ErrLookupFailed))
	assert.Equal(t, "create_place__rollback_complete", Key(ErrPersistFailed))
}
