package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/plinkhq/plink/internal/app/repository"
	"github.com/plinkhq/plink/internal/app/service"
	"github.com/plinkhq/plink/internal/http/middleware"
	"github.com/plinkhq/plink/internal/http/util"
	"go.uber.org/zap"
)

// AnalyticsDeps groups dependencies required by analytics handlers.
type AnalyticsDeps struct {
	Logger           *zap.Logger
	AnalyticsService service.AnalyticsService
}

// AnalyticsHandler implements the summary and click-recording endpoints.
type AnalyticsHandler struct {
	logger    *zap.Logger
	analytics service.AnalyticsService
}

// NewAnalyticsHandler creates an analytics handler with the provided dependencies.
func NewAnalyticsHandler(deps AnalyticsDeps) *AnalyticsHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{
		logger:    logger,
		analytics: deps.AnalyticsService,
	}
}

// Register wires the summary route behind auth and the click route without it
// (service-to-service, no principal).
func (h *AnalyticsHandler) Register(router fiber.Router, auth fiber.Handler) {
	router.Get("/analytics", auth, h.Summary)
	router.Post("/analytics/click", h.RecordClick)
}

// RecordClickRequest represents the click payload sent by the redirect edge.
type RecordClickRequest struct {
	UserID string `json:"userId"`
	LinkID string `json:"linkId"`
}

// Summary handles GET /api/analytics
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.analytics.Summarize(requestContext(c), middleware.UserID(c))
	if err != nil {
		h.logger.Error("failed to summarize analytics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load analytics",
		})
	}

	return c.JSON(summary)
}

// RecordClick handles POST /api/analytics/click
func (h *AnalyticsHandler) RecordClick(c *fiber.Ctx) error {
	var req RecordClickRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ip := util.ClientIP(c.Get("X-Forwarded-For"), c.Get("X-Real-Ip"))
	err := h.analytics.RecordClick(requestContext(c), req.UserID, req.LinkID, ip, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		switch {
		case service.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, repository.ErrLinkNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "link not found",
			})
		default:
			h.logger.Error("failed to record click", zap.Error(err), zap.String("link_id", req.LinkID))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record click",
			})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
