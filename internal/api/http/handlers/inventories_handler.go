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

// InventoriesHandler exposes stock CRUD and adjustments.
type InventoriesHandler struct {
	inventories  repository.InventoryRepository
	stockService *service.InventoryService
}

// NewInventoriesHandler constructs handler.
func NewInventoriesHandler(inventories repository.InventoryRepository, stockService *service.InventoryService) *InventoriesHandler {
	return &InventoriesHandler{inventories: inventories, stockService: stockService}
}

// List handles GET /api/inventories.
func (h *InventoriesHandler) List(c *fiber.Ctx) error {
	inventories, err := h.inventories.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": inventories})
}

// Get handles GET /api/inventories/:id.
func (h *InventoriesHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid inventory id", nil)
	}
	inventory, err := h.inventories.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": inventory})
}

// Create handles POST /api/inventories.
func (h *InventoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.InventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	inventory := &domain.Inventory{
		ProductID:         req.ProductID,
		WarehouseID:       req.WarehouseID,
		QuantityInStock:   req.QuantityInStock,
		LowStockThreshold: 10,
	}
	if req.LowStockThreshold != nil {
		inventory.LowStockThreshold = *req.LowStockThreshold
	}

	if err := h.inventories.Create(c.Context(), inventory); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": inventory})
}

// Update handles PATCH /api/inventories/:id.
func (h *InventoriesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid inventory id", nil)
	}

	var req dto.InventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	inventory, err := h.inventories.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}

	inventory.ProductID = req.ProductID
	inventory.WarehouseID = req.WarehouseID
	inventory.QuantityInStock = req.QuantityInStock
	if req.LowStockThreshold != nil {
		inventory.LowStockThreshold = *req.LowStockThreshold
	}

	if err := h.inventories.Update(c.Context(), inventory); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": inventory})
}

// AdjustStock handles POST /api/inventories/:id/adjust.
func (h *InventoriesHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid inventory id", nil)
	}

	var req dto.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	var actorID int64
	if session, ok := auth.SessionFromContext(c); ok && session.User != nil {
		actorID = session.User.ID
	}

	inventory, err := h.stockService.AdjustStock(c.Context(), actorID, int64(id), req.Delta)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inventory})
}

// Delete handles DELETE /api/inventories/:id.
func (h *InventoriesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid inventory id", nil)
	}
	if err := h.inventories.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Inventory deleted"})
}
