package universe

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"rpbot/core/database"
	"rpbot/core/platform"
	"rpbot/core/platform/mocks"
	"rpbot/core/reconcile"
	"rpbot/feature/setup"
	"rpbot/feature/universe/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	service *Service
	store   *GormStore
	servers *setup.GormStore
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

	api := new(mocks.ResourceAPI)
	cfg := Config{MaxUniversesPerCreator: 2, MaxServersPerUniverse: 2}
	return &testEnv{
		service: NewService(store, servers, api, cfg, zap.NewNop()),
		store:   store,
		servers: servers,
		api:     api,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	env := setupTestService(t)

	u, err := env.service.Create(ctx, "  Westeros ", 7)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Westeros", u.Name)
	assert.Equal(t, uint32(models.DefaultTimeModifier), u.GlobalTimeModifier)

	_, err = env.service.Create(ctx, "Essos", 7)
	require.NoError(t, err)

	_, err = env.service.Create(ctx, "Sothoryos", 7)
	assert.ErrorIs(t, err, ErrUniverseLimit)

	_, err = env.service.Create(ctx, "Other creator", 8)
	assert.NoError(t, err)

	_, err = env.service.Create(ctx, " ", 8)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestService_LinkServer(t *testing.T) {
	ctx := context.Background()
	env := setupTestService(t)
	u, err := env.service.Create(ctx, "Westeros", 7)
	require.NoError(t, err)

	cfg, err := env.service.LinkServer(ctx, u.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, u.ID, cfg.UniverseID)
	assert.False(t, reconcile.AnySet(cfg))

	stored, err := env.servers.GetByServerID(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, stored)

	_, err = env.service.LinkServer(ctx, u.ID, 100)
	assert.ErrorIs(t, err, ErrServerAlreadyLinked)

	_, err = env.service.LinkServer(ctx, u.ID, 101)
	require.NoError(t, err)
	_, err = env.service.LinkServer(ctx, u.ID, 102)
	assert.ErrorIs(t, err, ErrServerLimit)

	_, err = env.service.LinkServer(ctx, "missing", 103)
	assert.ErrorIs(t, err, ErrUniverseNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	provision := func(t *testing.T, env *testEnv) string {
		u, err := env.service.Create(ctx, "Westeros", 7)
		require.NoError(t, err)
		cfg, err := env.service.LinkServer(ctx, u.ID, 100)
		require.NoError(t, err)
		cfg.AdminRole = reconcile.NewRef(11, reconcile.KindRole)
		cfg.RoadCategory = reconcile.NewRef(21, reconcile.KindCategory)
		cfg.LogChannel = reconcile.NewRef(31, reconcile.KindChannel)
		require.NoError(t, env.servers.Update(ctx, cfg))
		return u.ID
	}

	t.Run("RemovesResourcesAndRecords", func(t *testing.T) {
		env := setupTestService(t)
		id := provision(t, env)
		env.api.On("DeleteRole", mock.Anything, uint64(100), uint64(11)).Return(nil).Once()
		env.api.On("DeleteChannel", mock.Anything, uint64(21)).Return(nil).Once()
		env.api.On("DeleteChannel", mock.Anything, uint64(31)).Return(nil).Once()

		require.NoError(t, env.service.Delete(ctx, id, 7))
		env.api.AssertExpectations(t)

		u, err := env.store.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, u)
		stored, err := env.servers.GetByServerID(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("LeftoversStillDeleteRecords", func(t *testing.T) {
		env := setupTestService(t)
		id := provision(t, env)
		env.api.On("DeleteRole", mock.Anything, uint64(100), uint64(11)).Return(errors.New("forbidden"))
		env.api.On("DeleteChannel", mock.Anything, uint64(21)).Return(&platform.APIError{Status: 404})
		env.api.On("DeleteChannel", mock.Anything, uint64(31)).Return(nil)

		err := env.service.Delete(ctx, id, 7)
		require.ErrorIs(t, err, ErrCleanupIncomplete)
		assert.Contains(t, err.Error(), "admin_role")

		u, err := env.store.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("OnlyCreator", func(t *testing.T) {
		env := setupTestService(t)
		id := provision(t, env)

		assert.ErrorIs(t, env.service.Delete(ctx, id, 8), ErrNotCreator)
		env.api.AssertNotCalled(t, "DeleteRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		env := setupTestService(t)
		assert.ErrorIs(t, env.service.Delete(ctx, "missing", 7), ErrUniverseNotFound)
	})
}

func TestHandler(t *testing.T) {
	env := setupTestService(t)
	feature := NewFeature(env.service)
	assert.Equal(t, "universe", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	do := func(method, path, body string) int {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusCreated, do("POST", "/universes", `{"name":"Westeros","creator_id":"7"}`))
	assert.Equal(t, fiber.StatusBadRequest, do("POST", "/universes", `{"name":"Westeros"}`))
	assert.Equal(t, fiber.StatusBadRequest, do("POST", "/universes", `{"name":"","creator_id":"7"}`))
	assert.Equal(t, fiber.StatusNotFound, do("POST", "/universes/missing/servers", `{"server_id":"100"}`))

	u, err := env.service.Create(context.Background(), "Essos", 7)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, do("POST", "/universes", `{"name":"Third","creator_id":"7"}`))
	assert.Equal(t, fiber.StatusCreated, do("POST", "/universes/"+u.ID+"/servers", `{"server_id":"100"}`))
	assert.Equal(t, fiber.StatusConflict, do("POST", "/universes/"+u.ID+"/servers", `{"server_id":"100"}`))
	assert.Equal(t, fiber.StatusBadRequest, do("POST", "/universes/"+u.ID+"/servers", `{"server_id":1.2345678901234568e18}`))

	assert.Equal(t, fiber.StatusCreated, do("POST", "/universes/"+u.ID+"/servers", `{"server_id":1234567890123456789}`))
	linked, err := env.servers.GetByServerID(context.Background(), 1234567890123456789)
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, u.ID, linked.UniverseID)
	missing, err := env.servers.GetByServerID(context.Background(), 1234567890123456768)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, fiber.StatusForbidden, do("DELETE", "/universes/"+u.ID+"?requester_id=8", ""))
	assert.Equal(t, fiber.StatusOK, do("DELETE", "/universes/"+u.ID+"?requester_id=7", ""))
	assert.Equal(t, fiber.StatusNotFound, do("DELETE", "/universes/"+u.ID+"?requester_id=7", ""))
}
