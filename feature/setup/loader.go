package setup

import (
	"rpbot/core/interaction"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the setup feature.
func NewFeature(orchestrator *Orchestrator, collector *interaction.Collector, names Translator, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(orchestrator, collector, names, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "setup"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
