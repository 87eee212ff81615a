package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plinkhq/plink/internal/app/service"
	"github.com/plinkhq/plink/internal/http/middleware"
	"go.uber.org/zap"
)

// AppearanceDeps groups dependencies required by appearance handlers.
type AppearanceDeps struct {
	Logger            *zap.Logger
	AppearanceService service.AppearanceService
}

// AppearanceHandler implements the theming endpoints.
type AppearanceHandler struct {
	logger      *zap.Logger
	appearances service.AppearanceService
}

// NewAppearanceHandler creates an appearance handler with the provided dependencies.
func NewAppearanceHandler(deps AppearanceDeps) *AppearanceHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppearanceHandler{
		logger:      logger,
		appearances: deps.AppearanceService,
	}
}

// Register wires appearance routes onto the router behind the auth middleware.
func (h *AppearanceHandler) Register(router fiber.Router, auth fiber.Handler) {
	router.Get("/appearance", auth, h.GetAppearance)
	router.Post("/appearance", auth, h.SaveAppearance)
}

// SaveAppearanceRequest is the full theming payload; saving replaces the record.
type SaveAppearanceRequest struct {
	Theme           string `json:"theme"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	ButtonStyle     string `json:"button_style"`
	Font            string `json:"font"`
	ShowAvatar      bool   `json:"show_avatar"`
	ShowSocials     bool   `json:"show_socials"`
}

// GetAppearance handles GET /api/appearance
func (h *AppearanceHandler) GetAppearance(c *fiber.Ctx) error {
	appearance, err := h.appearances.GetAppearance(requestContext(c), middleware.UserID(c))
	if err != nil {
		h.logger.Error("failed to load appearance", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load appearance",
		})
	}

	return c.JSON(appearance)
}

// SaveAppearance handles POST /api/appearance
func (h *AppearanceHandler) SaveAppearance(c *fiber.Ctx) error {
	var req SaveAppearanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	appearance, err := h.appearances.SaveAppearance(requestContext(c), middleware.UserID(c), service.AppearanceInput{
		Theme:           req.Theme,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
		ButtonStyle:     req.ButtonStyle,
		Font:            req.Font,
		ShowAvatar:      req.ShowAvatar,
		ShowSocials:     req.ShowSocials,
	})
	if err != nil {
		h.logger.Error("failed to save appearance", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save appearance",
		})
	}

	return c.JSON(appearance)
}
