package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/validation"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// CustomersHandler exposes customer CRUD.
type CustomersHandler struct {
	customers repository.CustomerRepository
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers repository.CustomerRepository) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// List handles GET /api/customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.customers.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": customers})
}

// Get handles GET /api/customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid customer id", nil)
	}
	customer, err := h.customers.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": customer})
}

// Create handles POST /api/customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	customer := &domain.Customer{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	}
	if err := h.customers.Create(c.Context(), customer); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": customer})
}

// Update handles PATCH /api/customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid customer id", nil)
	}

	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	customer, err := h.customers.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}

	customer.Name = req.Name
	customer.Address = req.Address
	customer.City = req.City
	customer.Phone = req.Phone

	if err := h.customers.Update(c.Context(), customer); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": customer})
}

// Delete handles DELETE /api/customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid customer id", nil)
	}
	if err := h.customers.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Customer deleted"})
}
