package session

import (
	"fmt"

	"table-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the database session.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Get("/config", h.HandleConfig)
	group.Post("/connect", h.HandleConnect)
	group.Post("/disconnect", h.HandleDisconnect)
	group.Get("/heartbeat", h.HandleHeartbeat)
	group.Post("/activity", h.HandleActivity)
}

// HandleConfig returns the non-secret connection settings.
func (h *Handler) HandleConfig(c *fiber.Ctx) error {
	h.service.tracker.Touch()
	cfg := h.service.Config()

	return c.JSON(fiber.Map{
		"idle_timeout_minutes": int(h.service.tracker.Timeout().Minutes()),
		"database": fiber.Map{
			"driver": cfg.Driver,
			"host":   cfg.Host,
			"port":   cfg.Port,
			"name":   cfg.Name,
		},
		"session": h.service.tracker.Snapshot(),
	})
}

// HandleConnect tests the requested database and makes it the active session.
func (h *Handler) HandleConnect(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	h.service.tracker.Touch()

	var req ConnectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Server == "" || req.Database == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing server or database parameters"})
	}

	if err := h.service.Connect(req); err != nil {
		l.Warn("Connection test failed",
			zap.String("server", req.Server),
			zap.String("database", req.Database),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Successfully connected to %s on %s", req.Database, req.Server),
	})
}

// HandleDisconnect closes the active session.
func (h *Handler) HandleDisconnect(c *fiber.Ctx) error {
	h.service.Disconnect()
	logger.WithRayID(h.service.logger, c).Info("Database session closed")
	return c.JSON(fiber.Map{"status": "disconnected"})
}

// HandleHeartbeat reports whether the session is alive. Polling keeps an
// active session from expiring.
func (h *Handler) HandleHeartbeat(c *fiber.Ctx) error {
	connected, timedOut := h.service.tracker.Heartbeat()
	return c.JSON(fiber.Map{
		"connected": connected,
		"timed_out": timedOut,
	})
}

// HandleActivity records user activity.
func (h *Handler) HandleActivity(c *fiber.Ctx) error {
	h.service.tracker.Touch()
	return c.JSON(fiber.Map{"status": "ok"})
}
