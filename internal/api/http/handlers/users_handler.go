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

// UsersHandler exposes staff account management.
type UsersHandler struct {
	users    *service.UserService
	userRepo repository.UserRepository
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, userRepo repository.UserRepository) *UsersHandler {
	return &UsersHandler{users: users, userRepo: userRepo}
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	var createdBy *int64
	if session, ok := auth.SessionFromContext(c); ok && session.User != nil {
		createdBy = &session.User.ID
	}

	user, tempPassword, err := h.users.Create(c.Context(), service.NewUserInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        domain.UserRole(req.Role),
		CreatedBy:   createdBy,
	})
	if err != nil {
		return err
	}

	// The temporary password is surfaced once, at creation time only.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user":              user.Public(),
			"temporaryPassword": tempPassword,
		},
	})
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, err := h.userRepo.List(c.Context(), limit, offset)
	if err != nil {
		return apperrors.MapError(err)
	}

	public := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return c.JSON(fiber.Map{"data": public})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid user id", nil)
	}

	user, err := h.userRepo.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": user.Public()})
}

// Update handles PATCH /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid user id", nil)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	user, err := h.userRepo.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.userRepo.Update(c.Context(), user); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": user.Public()})
}

// ChangePassword handles POST /api/users/password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok || session.User == nil {
		return apperrors.NewUnauthorized("Authentication required.")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	if err := h.users.ChangePassword(c.Context(), session.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Password changed successfully"})
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Invalid user id", nil)
	}
	if err := h.userRepo.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}
