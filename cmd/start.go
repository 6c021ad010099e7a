package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rpbot/core/interaction"
	"rpbot/core/loader"
	"rpbot/core/logger"
	"rpbot/core/middleware/auth"
	"rpbot/core/middleware/rayid"
	"rpbot/core/storage"
	"rpbot/feature/place"
	"rpbot/feature/road"
	"rpbot/feature/setup"
	"rpbot/feature/universe"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the provisioning server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and connections
		rt, err := newRuntime()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logg
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := rt.cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}
		if err := rt.migrate(); err != nil {
			logg.Fatal("Failed to migrate database", zap.Error(err))
		}

		// 2. Translation catalogs are optional; keys are shown untranslated without them
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := storage.EnsureBucket(ctx, rt.objects, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
			logg.Warn("Translation storage unavailable", zap.Error(err))
		}
		cancel()

		// 3. Setup pipeline
		collector := interaction.NewCollector()
		gate := interaction.NewGate(rt.api, collector, rt.cfg.Setup.ConfirmTimeout(), logg)
		orchestrator := setup.NewOrchestrator(rt.engine(), gate, logg)

		// 4. Fiber app; setup requests stay open while the confirmation prompt waits
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			WriteTimeout:          rt.cfg.Server.WriteTimeout(rt.cfg.Setup.ConfirmTimeout()),
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// 5. Feature loader
		mgr := loader.NewManager(logg)
		mgr.Register(setup.NewFeature(orchestrator, collector, rt.translator, logg))
		mgr.Register(universe.NewFeature(rt.universeService()))
		mgr.Register(place.NewFeature(rt.placeService(), rt.translator, logg))
		mgr.Register(road.NewFeature(rt.roadService(), rt.translator, logg))

		// Middleware: ray id first so every log line carries it
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start server
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		timeout := time.Duration(rt.cfg.Server.ShutdownTimeoutSeconds) * time.Second
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			logg.Warn("Shutdown incomplete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
