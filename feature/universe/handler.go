package universe

import (
	"errors"

	"rpbot/core/logger"
	"rpbot/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for universes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the universe routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/universes")
	group.Post("/", h.HandleCreate)
	group.Post("/:id/servers", h.HandleLinkServer)
	group.Delete("/:id", h.HandleDelete)
}

type createRequest struct {
	Name      string          `json:"name"`
	CreatorID utils.Snowflake `json:"creator_id"`
}

type linkRequest struct {
	ServerID utils.Snowflake `json:"server_id"`
}

// HandleCreate creates a universe.
// @Summary Create Universe
// @Description Creates a universe owned by the given user, within the free tier limit.
// @Tags universe
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{} "Created universe"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Limit reached"
// @Router /universes [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var body createRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	creatorID := body.CreatorID.Uint64()
	if creatorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "creator_id is required"})
	}

	u, err := h.service.Create(c.Context(), body.Name, creatorID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":                   u.ID,
		"name":                 u.Name,
		"creator_id":           u.CreatorID,
		"global_time_modifier": u.GlobalTimeModifier,
	})
}

// HandleLinkServer links a server to a universe.
// @Summary Link Server
// @Description Links a server to the universe so it can be set up.
// @Tags universe
// @Accept json
// @Produce json
// @Param id path string true "Universe ID"
// @Success 201 {object} map[string]string "Linked server record"
// @Failure 404 {object} map[string]string "Universe not found"
// @Failure 409 {object} map[string]string "Already linked or limit reached"
// @Router /universes/{id}/servers [post]
func (h *Handler) HandleLinkServer(c *fiber.Ctx) error {
	var body linkRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	serverID := body.ServerID.Uint64()
	if serverID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "server_id is required"})
	}

	cfg, err := h.service.LinkServer(c.Context(), c.Params("id"), serverID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          cfg.ID,
		"universe_id": cfg.UniverseID,
	})
}

// HandleDelete deletes a universe and cleans up its servers.
// @Summary Delete Universe
// @Description Deletes every provisioned resource of the linked servers, then the universe.
// @Tags universe
// @Produce json
// @Param id path string true "Universe ID"
// @Param requester_id query string true "User asking for deletion"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Universe not found"
// @Router /universes/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	requesterID := utils.ToUint64(c.Query("requester_id"))

	err := h.service.Delete(c.Context(), c.Params("id"), requesterID)
	if errors.Is(err, ErrCleanupIncomplete) {
		logger.WithRayID(h.service.logger, c).Warn("Universe deleted with leftovers", zap.Error(err))
		return c.JSON(fiber.Map{"status": "deleted", "warning": err.Error()})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUniverseNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrNotCreator):
		status = fiber.StatusForbidden
	case errors.Is(err, ErrInvalidName):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrUniverseLimit), errors.Is(err, ErrServerLimit), errors.Is(err, ErrServerAlreadyLinked):
		status = fiber.StatusConflict
	default:
		logger.WithRayID(h.service.logger, c).Error("Universe request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
