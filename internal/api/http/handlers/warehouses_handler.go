package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/validation"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// WarehousesHandler exposes warehouse CRUD.
type WarehousesHandler struct {
	warehouses repository.WarehouseRepository
}

// NewWarehousesHandler constructs handler.
func NewWarehousesHandler(warehouses repository.WarehouseRepository) *WarehousesHandler {
	return &WarehousesHandler{warehouses: warehouses}
}

// List handles GET /api/warehouses.
func (h *WarehousesHandler) List(c *fiber.Ctx) error {
	warehouses, err := h.warehouses.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": warehouses})
}

// Get handles GET /api/warehouses/:id.
func (h *WarehousesHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid warehouse id", nil)
	}
	warehouse, err := h.warehouses.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": warehouse})
}

// Create handles POST /api/warehouses.
func (h *WarehousesHandler) Create(c *fiber.Ctx) error {
	var req dto.WarehouseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	warehouse := &domain.Warehouse{Name: req.Name, Address: req.Address, City: req.City}
	if err := h.warehouses.Create(c.Context(), warehouse); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": warehouse})
}

// Update handles PATCH /api/warehouses/:id.
func (h *WarehousesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid warehouse id", nil)
	}

	var req dto.WarehouseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	warehouse, err := h.warehouses.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}

	warehouse.Name = req.Name
	warehouse.Address = req.Address
	warehouse.City = req.City

	if err := h.warehouses.Update(c.Context(), warehouse); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": warehouse})
}

// Delete handles DELETE /api/warehouses/:id.
func (h *WarehousesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid warehouse id", nil)
	}
	if err := h.warehouses.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Warehouse deleted"})
}
