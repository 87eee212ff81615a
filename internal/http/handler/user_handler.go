package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/plinkhq/plink/internal/app/repository"
	"github.com/plinkhq/plink/internal/app/service"
	"github.com/plinkhq/plink/internal/http/middleware"
	"go.uber.org/zap"
)

// UserDeps groups dependencies required by the account profile handlers.
type UserDeps struct {
	Logger      *zap.Logger
	UserService service.UserService
}

// UserHandler implements the authenticated user's profile endpoints.
type UserHandler struct {
	logger *zap.Logger
	users  service.UserService
}

// NewUserHandler creates a user handler with the provided dependencies.
func NewUserHandler(deps UserDeps) *UserHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{
		logger: logger,
		users:  deps.UserService,
	}
}

// Register wires profile routes onto the router behind the auth middleware.
// The sync route is called by the identity provider and carries no principal.
func (h *UserHandler) Register(router fiber.Router, auth fiber.Handler) {
	router.Get("/profile", auth, h.GetProfile)
	router.Put("/profile", auth, h.UpdateProfile)
	router.Post("/users/sync", h.SyncUser)
}

// UpdateProfileRequest is the partial account update payload.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// GetProfile handles GET /api/profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.users.GetUser(requestContext(c), middleware.UserID(c))
	if err != nil {
		return h.userError(c, err, "failed to load profile")
	}
	return c.JSON(user)
}

// UpdateProfile handles PUT /api/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := h.users.UpdateProfile(requestContext(c), middleware.UserID(c), service.ProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return h.userError(c, err, "failed to update profile")
	}
	return c.JSON(user)
}

// SyncUserRequest is the identity-provider payload for user materialization.
type SyncUserRequest struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// SyncUser handles POST /api/users/sync
func (h *UserHandler) SyncUser(c *fiber.Ctx) error {
	var req SyncUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := h.users.SyncUser(requestContext(c), service.SyncUserInput{
		ID:          req.ID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		if service.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("failed to sync user", zap.Error(err), zap.String("user_id", req.ID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to sync user",
		})
	}

	return c.JSON(user)
}

func (h *UserHandler) userError(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}
	h.logger.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
	})
}
