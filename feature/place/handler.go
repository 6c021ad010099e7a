package place

import (
	"errors"

	"rpbot/core/logger"
	"rpbot/core/utils"
	"rpbot/feature/setup"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for places.
type Handler struct {
	service *Service
	names   setup.Translator
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, names setup.Translator, logger *zap.Logger) *Handler {
	return &Handler{service: service, names: names, logger: logger}
}

// RegisterRoutes registers the place routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/servers/:server_id/places")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
}

type createRequest struct {
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

// HandleCreate creates a place on a linked server.
// @Summary Create Place
// @Description Creates a role and a category only that role can see, and records them as a place of the server's universe.
// @Tags place
// @Accept json
// @Produce json
// @Param server_id path string true "Server ID"
// @Success 201 {object} map[string]interface{} "Created place"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Server not linked"
// @Failure 500 {object} map[string]string "Creation failed"
// @Router /servers/{server_id}/places [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	serverID := utils.ToUint64(c.Params("server_id"))
	if serverID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid server id"})
	}

	var body createRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	ctx := c.Context()
	p, err := h.service.Create(ctx, serverID, body.Name)
	key := Key(err)
	if err != nil {
		logger.WithRayID(h.logger, c).Warn("Place creation failed", zap.Uint64("server_id", serverID), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"token":   key,
			"message": h.names.Translate(ctx, body.Locale, key),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":       key,
		"message":     h.names.Translate(ctx, body.Locale, key),
		"id":          p.ID,
		"name":        p.Name,
		"category_id": p.Category.ID,
		"role_id":     p.Role.ID,
	})
}

// HandleList lists the places of a server.
// @Summary List Places
// @Tags place
// @Produce json
// @Param server_id path string true "Server ID"
// @Success 200 {array} map[string]interface{} "Places"
// @Router /servers/{server_id}/places [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	serverID := utils.ToUint64(c.Params("server_id"))
	if serverID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid server id"})
	}

	places, err := h.service.List(c.Context(), serverID)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to list places", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]fiber.Map, 0, len(places))
	for _, p := range places {
		out = append(out, fiber.Map{
			"id":          p.ID,
			"name":        p.Name,
			"category_id": p.Category.ID,
			"role_id":     p.Role.ID,
		})
	}
	return c.JSON(out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidName):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrServerNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
