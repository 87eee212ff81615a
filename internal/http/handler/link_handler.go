package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/plinkhq/plink/internal/app/repository"
	"github.com/plinkhq/plink/internal/app/service"
	"github.com/plinkhq/plink/internal/http/middleware"
	"go.uber.org/zap"
)

// LinkDeps groups dependencies required by link handlers.
type LinkDeps struct {
	Logger      *zap.Logger
	LinkService service.LinkService
}

// LinkHandler implements the link management endpoints.
type LinkHandler struct {
	logger      *zap.Logger
	linkService service.LinkService
}

// NewLinkHandler creates a link handler with the provided dependencies.
func NewLinkHandler(deps LinkDeps) *LinkHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkHandler{
		logger:      logger,
		linkService: deps.LinkService,
	}
}

// Register wires link routes onto the router behind the auth middleware.
func (h *LinkHandler) Register(router fiber.Router, auth fiber.Handler) {
	links := router.Group("/links", auth)
	{
		links.Get("/", h.ListLinks)
		links.Post("/", h.CreateLink)
		links.Post("/reorder", h.ReorderLinks)
		links.Put("/:id", h.UpdateLink)
		links.Delete("/:id", h.DeleteLink)
	}
}

// CreateLinkRequest represents the request body for creating a link.
type CreateLinkRequest struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Icon  *string `json:"icon,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// UpdateLinkRequest represents the request body for a partial link update.
type UpdateLinkRequest struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ReorderRequest represents the atomic reorder batch.
type ReorderRequest struct {
	Links []ReorderItemRequest `json:"links"`
}

// ReorderItemRequest is one (id, order) pair of the batch.
type ReorderItemRequest struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// ListLinks handles GET /api/links
func (h *LinkHandler) ListLinks(c *fiber.Ctx) error {
	links, err := h.linkService.ListLinks(requestContext(c), middleware.UserID(c))
	if err != nil {
		h.logger.Error("failed to list links", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list links",
		})
	}

	return c.JSON(fiber.Map{
		"links": links,
		"count": len(links),
	})
}

// CreateLink handles POST /api/links
func (h *LinkHandler) CreateLink(c *fiber.Ctx) error {
	var req CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	link, err := h.linkService.CreateLink(requestContext(c), middleware.UserID(c), service.CreateLinkInput{
		Title:    req.Title,
		URL:      req.URL,
		Icon:     req.Icon,
		Position: req.Order,
	})
	if err != nil {
		if service.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("failed to create link", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create link",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(link)
}

// UpdateLink handles PUT /api/links/:id
func (h *LinkHandler) UpdateLink(c *fiber.Ctx) error {
	linkID := c.Params("id")
	if linkID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "link id is required",
		})
	}

	var req UpdateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	link, err := h.linkService.UpdateLink(requestContext(c), middleware.UserID(c), linkID, service.UpdateLinkInput{
		Title:    req.Title,
		URL:      req.URL,
		Icon:     req.Icon,
		IsActive: req.IsActive,
	})
	if err != nil {
		return h.linkError(c, err, "failed to update link", linkID)
	}

	return c.JSON(link)
}

// DeleteLink handles DELETE /api/links/:id
func (h *LinkHandler) DeleteLink(c *fiber.Ctx) error {
	linkID := c.Params("id")
	if linkID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "link id is required",
		})
	}

	if err := h.linkService.DeleteLink(requestContext(c), middleware.UserID(c), linkID); err != nil {
		return h.linkError(c, err, "failed to delete link", linkID)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ReorderLinks handles POST /api/links/reorder
func (h *LinkHandler) ReorderLinks(c *fiber.Ctx) error {
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	items := make([]service.ReorderItem, len(req.Links))
	for i, l := range req.Links {
		items[i] = service.ReorderItem{ID: l.ID, Position: l.Order}
	}

	if err := h.linkService.ReorderLinks(requestContext(c), middleware.UserID(c), items); err != nil {
		return h.linkError(c, err, "failed to reorder links", "")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *LinkHandler) linkError(c *fiber.Ctx, err error, msg, linkID string) error {
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
		h.logger.Error(msg, zap.Error(err), zap.String("link_id", linkID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msg,
		})
	}
}

func requestContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
