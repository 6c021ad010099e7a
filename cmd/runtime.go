package cmd

import (
	"fmt"

	"rpbot/core/config"
	"rpbot/core/database"
	"rpbot/core/i18n"
	"rpbot/core/logger"
	"rpbot/core/platform/discord"
	"rpbot/core/storage"
	"rpbot/feature/place"
	"rpbot/feature/road"
	"rpbot/feature/setup"
	"rpbot/feature/universe"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the dependencies shared by every command.
type runtime struct {
	cfg        *config.Config
	logg       *zap.Logger
	db         *gorm.DB
	servers    *setup.GormStore
	universes  *universe.GormStore
	places     *place.GormStore
	roads      *road.GormStore
	objects    storage.Client
	translator *i18n.Translator
	api        *discord.Client
}

// newRuntime loads the configuration and connects the database, the object
// storage and the platform client. The database is required.
func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	objects, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &runtime{
		cfg:        cfg,
		logg:       logg,
		db:         db,
		servers:    setup.NewGormStore(db),
		universes:  universe.NewGormStore(db),
		places:     place.NewGormStore(db),
		roads:      road.NewGormStore(db),
		objects:    objects,
		translator: i18n.New(objects, cfg.Storage.Bucket, cfg.I18n, logg),
		api:        discord.NewClient(cfg.Discord),
	}, nil
}

// migrate creates or updates every table the stores use.
func (r *runtime) migrate() error {
	if err := r.servers.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate server configs: %w", err)
	}
	if err := r.universes.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate universes: %w", err)
	}
	if err := r.places.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate places: %w", err)
	}
	if err := r.roads.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate roads: %w", err)
	}
	return nil
}

func (r *runtime) engine() *setup.Engine {
	return setup.NewEngine(r.api, r.servers, r.translator, r.logg)
}

func (r *runtime) universeService() *universe.Service {
	return universe.NewService(r.universes, r.servers, r.api, r.cfg.Universe, r.logg)
}

func (r *runtime) placeService() *place.Service {
	return place.NewService(r.places, r.servers, r.api, r.logg)
}

func (r *runtime) roadService() *road.Service {
	return road.NewService(r.roads, r.places, r.servers, r.api, r.logg)
}
