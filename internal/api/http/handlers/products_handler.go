package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/validation"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// ProductsHandler exposes product CRUD.
type ProductsHandler struct {
	products repository.ProductRepository
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products repository.ProductRepository) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /api/products with optional category and status filters.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if categoryID := c.QueryInt("categoryId", 0); categoryID > 0 {
		id := int64(categoryID)
		filter.CategoryID = &id
	}
	if status := c.Query("status"); status != "" {
		s := domain.ProductStatus(status)
		if !domain.ValidProductStatus(s) {
			return apperrors.NewValidationError("Invalid status value", nil)
		}
		filter.Status = &s
	}

	products, err := h.products.List(c.Context(), filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": products})
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid product id", nil)
	}
	product, err := h.products.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	status := domain.ProductStatusDraft
	if req.Status != nil {
		status = domain.ProductStatus(*req.Status)
	}

	product := &domain.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Status:      status,
	}
	if err := h.products.Create(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// Update handles PATCH /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid product id", nil)
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	product, err := h.products.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}

	product.SKU = req.SKU
	product.Name = req.Name
	product.Description = req.Description
	product.ImageURL = req.ImageURL
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	if req.Status != nil {
		product.Status = domain.ProductStatus(*req.Status)
	}

	if err := h.products.Update(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid product id", nil)
	}
	if err := h.products.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "Product deleted"})
}
