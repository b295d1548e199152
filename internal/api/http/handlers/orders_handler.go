package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/service"
	"github.com/spec-kit/inventory-service/internal/validation"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// OrdersHandler exposes order creation and fulfillment.
type OrdersHandler struct {
	orders       repository.OrderRepository
	orderService *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders repository.OrderRepository, orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders, orderService: orderService}
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.orders.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": orders})
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid order id", nil)
	}
	order, err := h.orders.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": order})
}

// Create handles POST /api/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok || session.User == nil {
		return apperrors.NewUnauthorized("Authentication required.")
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	items := make([]service.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.NewOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orderService.Create(c.Context(), session.User.ID, req.CustomerID, items)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": order})
}

// SetStatus handles PATCH /api/orders/:id/status.
func (h *OrdersHandler) SetStatus(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok || session.User == nil {
		return apperrors.NewUnauthorized("Authentication required.")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid order id", nil)
	}

	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	order, err := h.orderService.SetStatus(c.Context(), session.User.ID, int64(id), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": order})
}

// Delete handles DELETE /api/orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid order id", nil)
	}
	if err := h.orders.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Order deleted"})
}
