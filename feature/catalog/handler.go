package catalog

import (
	"errors"

	"catalog-sync/core/logger"
	"catalog-sync/core/source"
	"catalog-sync/core/syncer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog synchronization.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleSyncAll)
	group.Post("/:kind", h.HandleSyncKind)
}

// HandleSyncAll triggers a full catalog sync across all kinds.
// @Summary Run Full Sync
// @Description Synchronize every entity kind with the target platform, in dependency order.
// @Tags sync
// @Accept json
// @Produce json
// @Param limit query int false "Max entities per kind (0 = unlimited)"
// @Param delete query bool false "Delete target records instead of syncing"
// @Success 200 {object} syncer.RunSummary "Run Summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync [post]
func (h *Handler) HandleSyncAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := optsFromQuery(c)

	summary, err := h.service.SyncAll(c.Context(), opts)
	if err != nil {
		l.Error("Full sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(summary)
}

// HandleSyncKind triggers a sync for a single entity kind.
// @Summary Run Kind Sync
// @Description Synchronize a single entity kind (file, object, page, collection, redirect, price).
// @Tags sync
// @Accept json
// @Produce json
// @Param kind path string true "Entity kind"
// @Param limit query int false "Max entities (0 = unlimited)"
// @Param delete query bool false "Delete target records instead of syncing"
// @Success 200 {object} syncer.RunSummary "Run Summary"
// @Failure 400 {object} map[string]string "Unknown Kind"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/{kind} [post]
func (h *Handler) HandleSyncKind(c *fiber.Ctx) error {
	kind := source.Kind(c.Params("kind"))
	l := logger.WithRayID(h.service.logger, c)

	if !kind.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown kind: " + string(kind),
		})
	}

	summary, err := h.service.SyncKind(c.Context(), kind, optsFromQuery(c))
	if err != nil {
		var notRegistered *syncer.KindNotRegisteredError
		if errors.As(err, &notRegistered) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Kind sync failed", zap.String("kind", string(kind)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(summary)
}

func optsFromQuery(c *fiber.Ctx) syncer.Options {
	return syncer.Options{
		Limit:      c.QueryInt("limit", 0),
		DeleteMode: c.QueryBool("delete", false),
	}
}
