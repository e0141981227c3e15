package comparison

import (
	"bytes"
	"errors"

	"table-reconciler/core/database"
	"table-reconciler/core/ingest"
	"table-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Post("/preview_sql", h.HandlePreviewSQL)
	group.Post("/upload_file", h.HandleUpload)
	group.Post("/run_comparison", h.HandleRun)
	group.Get("/results_page", h.HandleResultsPage)
	group.Get("/export_excel", h.HandleExport)
}

// HandlePreviewSQL runs a read-only query and returns its first rows.
func (h *Handler) HandlePreviewSQL(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	preview, err := h.service.PreviewSQL(c.Context(), req.Query)
	if err != nil {
		return h.fail(c, "SQL preview failed", err)
	}
	return c.JSON(preview)
}

// HandleUpload stores an uploaded CSV or XLSX file.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file part"})
	}
	if fh.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No selected file"})
	}

	f, err := fh.Open()
	if err != nil {
		return h.fail(c, "Failed to open upload", err)
	}
	defer f.Close()

	res, err := h.service.Upload(c.Context(), fh.Filename, f)
	if err != nil {
		return h.fail(c, "Upload failed", err)
	}
	return c.JSON(res)
}

// HandleRun reconciles a query result against an uploaded file.
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	var req RunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := h.service.Run(c.Context(), req)
	if err != nil {
		return h.fail(c, "Comparison failed", err)
	}
	return c.JSON(res)
}

// HandleResultsPage returns one page of a stored result.
func (h *Handler) HandleResultsPage(c *fiber.Ctx) error {
	page, err := h.service.Page(c.Context(), c.Query("result_id"), c.QueryInt("page", 1), c.QueryInt("size", 0))
	if err != nil {
		return h.fail(c, "Results page failed", err)
	}
	return c.JSON(page)
}

// HandleExport downloads a stored result as a styled workbook.
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	id := c.Query("result_id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing result_id"})
	}

	var buf bytes.Buffer
	if err := h.service.Export(c.Context(), id, &buf); err != nil {
		return h.fail(c, "Export failed", err)
	}

	c.Attachment(ExportFileName(id))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

// fail maps err to a status code and a user-facing message.
func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.service.logger, c)

	status := fiber.StatusBadRequest
	text := err.Error()
	switch {
	case errors.Is(err, database.ErrForbiddenQuery):
		status = fiber.StatusForbidden
		text = "Security Alert: Only SELECT queries are permitted in this environment."
	case errors.Is(err, ErrUploadExpired):
		status = fiber.StatusNotFound
		text = "File session expired or invalid. Please re-upload."
	case errors.Is(err, ErrResultExpired):
		status = fiber.StatusNotFound
		text = "Result cache expired. Run comparison again."
	case errors.Is(err, ErrMissingParameters),
		errors.Is(err, ErrNotConnected),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ingest.ErrUnsupportedFormat),
		errors.Is(err, ingest.ErrEmptyUpload):
	default:
		status = fiber.StatusInternalServerError
	}

	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": text})
}
