package handlers

import (
	"giftcerts/internal/apperr"
	"giftcerts/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the protected router.
func (h *UserHandler) RegisterRoutes(protected fiber.Router) {
	userRoutes := protected.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
}

// HandleListUsers lists users windowed by page/size.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	page, err := h.service.ListUsers(queryParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// HandleGetUserByID retrieves a single user.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id", apperr.CodeInvalidUserID)
	if err != nil {
		return writeError(c, err)
	}
	user, err := h.service.GetUserByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}
