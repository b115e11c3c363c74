package handlers

import (
	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{
		service: service,
	}
}

// RegisterRoutes registers tag routes: reads on the public router, writes on
// the protected one.
func (h *TagHandler) RegisterRoutes(public, protected fiber.Router) {
	publicRoutes := public.Group("/tags")
	publicRoutes.Get("/", h.HandleListTags)
	publicRoutes.Get("/:id", h.HandleGetTagByID)

	protectedRoutes := protected.Group("/tags")
	protectedRoutes.Post("/", h.HandleCreateTag)
	protectedRoutes.Delete("/:id", h.HandleDeleteTag)
}

// HandleListTags lists live tags windowed by page/size.
func (h *TagHandler) HandleListTags(c *fiber.Ctx) error {
	page, err := h.service.ListTags(queryParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// HandleGetTagByID retrieves a single tag.
func (h *TagHandler) HandleGetTagByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id", apperr.CodeInvalidTagID)
	if err != nil {
		return writeError(c, err)
	}
	tag, err := h.service.GetTagByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tag)
}

// HandleCreateTag creates a standalone tag.
func (h *TagHandler) HandleCreateTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := c.BodyParser(&tag); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	tag.ID = 0

	if err := h.service.CreateTag(&tag); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// HandleDeleteTag soft-deletes a tag.
func (h *TagHandler) HandleDeleteTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id", apperr.CodeInvalidTagID)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteTag(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
