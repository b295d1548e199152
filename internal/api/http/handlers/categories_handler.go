package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/validation"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// CategoriesHandler exposes category CRUD.
type CategoriesHandler struct {
	categories repository.CategoryRepository
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories repository.CategoryRepository) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": categories})
}

// Get handles GET /api/categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid category id", nil)
	}
	category, err := h.categories.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": category})
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	category := &domain.Category{Name: req.Name, Description: req.Description}
	if err := h.categories.Create(c.Context(), category); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": category})
}

// Update handles PATCH /api/categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid category id", nil)
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	category, err := h.categories.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}

	category.Name = req.Name
	category.Description = req.Description

	if err := h.categories.Update(c.Context(), category); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": category})
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid category id", nil)
	}
	if err := h.categories.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Category deleted"})
}
