package merging

import (
	"errors"
	"strconv"

	"mods-merger/core/audit"
	"mods-merger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for merge runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = audit.Run{}
	return &Handler{service: service}
}

// RegisterRoutes registers the merge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/merge", h.HandleMerge)
	app.Get("/outputs", h.HandleListOutputs)

	runs := app.Group("/runs")
	runs.Get("/", h.HandleListRuns)
	runs.Get("/:id", h.HandleGetRun)
}

// HandleMerge runs a manifest.
// @Summary Merge Asset Groups
// @Description Merges every group of the manifest in order and returns one report per group. Groups failing to load their base file are counted in "failed" and do not stop the others.
// @Tags merge
// @Accept json
// @Produce json
// @Param manifest body Manifest true "Groups to merge"
// @Success 200 {object} Result "Merge reports"
// @Failure 400 {object} map[string]string "Invalid manifest"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /merge [post]
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var m Manifest
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid manifest body"})
	}
	if err := m.Resolve(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Triggering merge", zap.Int("groups", len(m.Groups)))
	result, err := h.service.Run(c.Context(), &m)
	if err != nil {
		l.Error("Merge failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleListRuns lists recorded runs.
// @Summary List Merge Runs
// @Description Returns the most recent recorded merge runs without their audit records.
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum number of runs" default(50)
// @Success 200 {array} audit.Run "Runs"
// @Failure 503 {object} map[string]string "Database not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit, _ := strconv.Atoi(c.Query("limit"))
	runs, err := h.service.ListRuns(c.Context(), limit)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(runs)
}

// HandleGetRun returns one run.
// @Summary Get Merge Run
// @Description Returns one recorded merge run with every audit record it emitted.
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} audit.Run "Run"
// @Failure 404 {object} map[string]string "Run not found"
// @Failure 503 {object} map[string]string "Database not configured"
// @Router /runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.GetRun(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(run)
}

// HandleListOutputs lists published merge output.
// @Summary List Published Outputs
// @Description Lists object keys of merged files uploaded to the storage bucket.
// @Tags merge
// @Produce json
// @Success 200 {object} map[string]interface{} "Object keys"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /outputs [get]
func (h *Handler) HandleListOutputs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.ListOutputs(c.Context())
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"count": len(keys), "objects": keys})
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNoDatabase), errors.Is(err, ErrNoStorage):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, audit.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		l.Error("Request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
