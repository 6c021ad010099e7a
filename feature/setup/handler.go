package setup

import (
	"errors"

	"rpbot/core/interaction"
	"rpbot/core/logger"
	"rpbot/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const keyResultTitle = "setup_server__title"

// Handler handles HTTP requests for server setup.
type Handler struct {
	orchestrator *Orchestrator
	collector    *interaction.Collector
	names        Translator
	logger       *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(orchestrator *Orchestrator, collector *interaction.Collector, names Translator, logger *zap.Logger) *Handler {
	return &Handler{orchestrator: orchestrator, collector: collector, names: names, logger: logger}
}

// RegisterRoutes registers the setup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/setup/:server_id", h.HandleSetup)
	app.Post("/interactions", h.HandleInteraction)
}

type setupRequest struct {
	UserID    utils.Snowflake `json:"user_id"`
	ChannelID utils.Snowflake `json:"channel_id"`
	Mode      string          `json:"mode"`
	Locale    string          `json:"locale"`
}

type interactionRequest struct {
	UserID    utils.Snowflake `json:"user_id"`
	ChannelID utils.Snowflake `json:"channel_id"`
	MessageID utils.Snowflake `json:"message_id"`
	CustomID  string          `json:"custom_id"`
}

// HandleSetup runs a setup on one server and blocks until it finishes.
// @Summary Set Up Server
// @Description Provisions the managed roles, categories and channels of a linked server. Asks the invoking user for confirmation in the given channel when the server was set up before.
// @Tags setup
// @Accept json
// @Produce json
// @Param server_id path string true "Server ID"
// @Success 200 {object} map[string]string "Result token and localized message"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Server not linked"
// @Failure 500 {object} map[string]string "Setup failed"
// @Router /setup/{server_id} [post]
func (h *Handler) HandleSetup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	serverID := utils.ToUint64(c.Params("server_id"))
	if serverID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid server id"})
	}

	var body setupRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	mode, err := ParseMode(body.Mode)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req := Request{
		ServerID:  serverID,
		UserID:    body.UserID.Uint64(),
		ChannelID: body.ChannelID.Uint64(),
		Mode:      mode,
		Locale:    body.Locale,
	}
	if req.UserID == 0 || req.ChannelID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and channel_id are required"})
	}

	l.Info("Setup requested", zap.Uint64("server_id", serverID), zap.String("mode", string(mode)))

	// The response is held until the orchestrator returns, which includes waiting up to
	// the confirmation timeout. A server WriteTimeout must stay above setup.confirm_timeout_seconds.
	ctx := c.Context()
	token, err := h.orchestrator.Run(ctx, req)

	key := string(token)
	status := fiber.StatusOK
	if err != nil {
		key = Key(err)
		status = statusFor(err)
		l.Warn("Setup failed", zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"token":   key,
		"title":   h.names.Translate(ctx, req.Locale, keyResultTitle),
		"message": h.names.Translate(ctx, req.Locale, key),
	})
}

// HandleInteraction routes a button click to the setup waiting for it.
// @Summary Deliver Interaction
// @Description Delivers a component interaction to a pending confirmation prompt.
// @Tags setup
// @Accept json
// @Produce json
// @Success 202 {object} map[string]string "Accepted"
// @Failure 404 {object} map[string]string "No prompt waiting for this interaction"
// @Router /interactions [post]
func (h *Handler) HandleInteraction(c *fiber.Ctx) error {
	var body interactionRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	ev := interaction.Event{
		UserID:    body.UserID.Uint64(),
		ChannelID: body.ChannelID.Uint64(),
		MessageID: body.MessageID.Uint64(),
		CustomID:  body.CustomID,
	}
	if !h.collector.Dispatch(ev) {
		logger.WithRayID(h.logger, c).Debug("Interaction dropped", zap.String("custom_id", ev.CustomID))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no pending prompt"})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrServerNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrTimeout):
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
