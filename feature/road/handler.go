package road

import (
	"errors"

	"rpbot/core/logger"
	"rpbot/core/utils"
	"rpbot/feature/setup"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for roads.
type Handler struct {
	service *Service
	names   setup.Translator
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, names setup.Translator, logger *zap.Logger) *Handler {
	return &Handler{service: service, names: names, logger: logger}
}

// RegisterRoutes registers the road routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/servers/:server_id/roads")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
}

type createRequest struct {
	PlaceOne utils.Snowflake `json:"place_one"`
	PlaceTwo utils.Snowflake `json:"place_two"`
	Distance uint64          `json:"distance"`
	Locale   string          `json:"locale"`
}

// HandleCreate builds a road between two places.
// @Summary Create Road
// @Description Creates a role and a channel under the roads category connecting two places of the server's universe.
// @Tags road
// @Accept json
// @Produce json
// @Param server_id path string true "Server ID"
// @Success 201 {object} map[string]interface{} "Created road"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Server or place not found"
// @Failure 409 {object} map[string]string "Server not set up"
// @Failure 500 {object} map[string]string "Creation failed"
// @Router /servers/{server_id}/roads [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	serverID := utils.ToUint64(c.Params("server_id"))
	if serverID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid server id"})
	}

	var body createRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.PlaceOne == 0 || body.PlaceTwo == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "place_one and place_two are required"})
	}

	ctx := c.Context()
	r, err := h.service.Create(ctx, Request{
		ServerID: serverID,
		PlaceOne: body.PlaceOne.Uint64(),
		PlaceTwo: body.PlaceTwo.Uint64(),
		Distance: body.Distance,
	})
	key := Key(err)
	if err != nil {
		logger.WithRayID(h.logger, c).Warn("Road creation failed", zap.Uint64("server_id", serverID), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"token":   key,
			"message": h.names.Translate(ctx, body.Locale, key),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":      key,
		"message":    h.names.Translate(ctx, body.Locale, key),
		"id":         r.ID,
		"name":       r.Name,
		"channel_id": r.Channel.ID,
		"role_id":    r.Role.ID,
		"distance":   r.Distance,
	})
}

// HandleList lists the roads of a server.
// @Summary List Roads
// @Tags road
// @Produce json
// @Param server_id path string true "Server ID"
// @Success 200 {array} map[string]interface{} "Roads"
// @Router /servers/{server_id}/roads [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	serverID := utils.ToUint64(c.Params("server_id"))
	if serverID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid server id"})
	}

	roads, err := h.service.List(c.Context(), serverID)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to list roads", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]fiber.Map, 0, len(roads))
	for _, r := range roads {
		out = append(out, fiber.Map{
			"id":         r.ID,
			"name":       r.Name,
			"channel_id": r.Channel.ID,
			"place_one":  r.PlaceOneID,
			"place_two":  r.PlaceTwoID,
			"distance":   r.Distance,
		})
	}
	return c.JSON(out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSamePlace):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrServerNotFound), errors.Is(err, ErrPlaceOneNotFound), errors.Is(err, ErrPlaceTwoNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrServerNotSetUp):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
