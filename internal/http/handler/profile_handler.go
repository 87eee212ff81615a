package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/plinkhq/plink/internal/app/repository"
	"github.com/plinkhq/plink/internal/app/service"
	"github.com/plinkhq/plink/internal/http/util"
	"go.uber.org/zap"
)

// ProfileDeps groups dependencies required by the public profile handler.
type ProfileDeps struct {
	Logger         *zap.Logger
	ProfileService service.ProfileService
}

// ProfileHandler serves the unauthenticated public profile read.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles service.ProfileService
}

// NewProfileHandler creates a profile handler with the provided dependencies.
func NewProfileHandler(deps ProfileDeps) *ProfileHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{
		logger:   logger,
		profiles: deps.ProfileService,
	}
}

// Register wires the public profile route onto the provided router.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Get("/u/:username", h.GetProfile)
}

// GetProfile handles GET /u/:username. An unreachable store is
// indistinguishable from a nonexistent user at this boundary, so everything
// but success degrades to not-found.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "profile not found",
		})
	}

	ip := util.ClientIP(c.Get("X-Forwarded-For"), c.Get("X-Real-Ip"))
	profile, err := h.profiles.GetProfile(requestContext(c), username, ip, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			h.logger.Error("failed to load public profile", zap.Error(err), zap.String("username", username))
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "profile not found",
		})
	}

	return c.JSON(profile)
}
