package integrity

import (
	"table-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
}

// HandleIntegrityCheck runs every check. Unhealthy reports answer 503.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report := h.service.Run(c.Context())
	if !report.Healthy {
		l.Warn("Integrity check failed",
			zap.String("storage", report.Storage.Status),
			zap.String("database", report.Database.Status))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleStorageCheck checks the bucket and creates it with ?fix=true.
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	check := h.service.CheckStorage(c.Context())
	if check.Status == StatusMissing && fix {
		l.Info("Attempting to create missing bucket")
		if err := h.service.FixStorage(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to fix storage",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "target": check.Target})
	}

	if !check.OK() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(check)
	}
	return c.JSON(check)
}

// HandleDatabaseCheck pings the reference database.
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	check := h.service.CheckDatabase()
	if !check.OK() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(check)
	}
	return c.JSON(check)
}
