package handlers

import (
	"giftcerts/internal/apperr"
	"giftcerts/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders. All order routes require
// authentication.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the protected router.
func (h *OrderHandler) RegisterRoutes(protected fiber.Router) {
	orderRoutes := protected.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)

	protected.Get("/users/:userId/orders", h.HandleListUserOrders)
}

// HandleListOrders lists all orders windowed by page/size.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	page, err := h.service.ListOrders(queryParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// HandleListUserOrders lists one user's orders windowed by page/size.
func (h *OrderHandler) HandleListUserOrders(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId", apperr.CodeInvalidUserID)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.service.ListUserOrders(userID, queryParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// HandleGetOrderByID retrieves a single order.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id", apperr.CodeInvalidOrderID)
	if err != nil {
		return writeError(c, err)
	}
	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// CreateOrderRequest is the request body for placing an order.
type CreateOrderRequest struct {
	Certificates []services.OrderLineProposal `json:"certificates"`
}

// HandleCreateOrder places a new order for the authenticated user. Line
// proposals referencing the same certificate are merged by the service.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// user_id claim round-trips through JSON as a float64.
	claim, ok := c.Locals("user_id").(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing user identity",
		})
	}

	order, err := h.service.CreateOrder(int64(claim), req.Certificates)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
