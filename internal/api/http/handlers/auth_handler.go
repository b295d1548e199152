package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/service"
	"github.com/spec-kit/inventory-service/internal/validation"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// AuthHandler exposes the session lifecycle endpoints. Tokens travel only in
// cookies; response bodies never carry token material.
type AuthHandler struct {
	sessions *service.AuthService
	cookies  *auth.CookieWriter
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.AuthService, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if !validation.Identifier(req.Identifier) {
		return apperrors.NewValidationError("Identifier must be a valid email address or phone number", nil)
	}

	_, pair, err := h.sessions.Login(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Attach(c, pair)
	return c.JSON(dto.MessageResponse{Message: "Login successful"})
}

// Refresh handles POST /auth/refresh behind the refresh-token chain. The
// whole pair is rotated; renewing only the access token would let a session
// outlive its refresh horizon.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Invalid or expired refresh token. Please login again.")
	}

	pair, err := h.sessions.Rotate(c.Context(), session.User.ID)
	if err != nil {
		return err
	}

	h.cookies.Attach(c, pair)
	return c.JSON(dto.MessageResponse{Message: "Token refreshed successfully"})
}

// Logout handles POST /auth/logout. It never fails: clearing cookies that
// are not set is a no-op.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return c.JSON(dto.MessageResponse{Message: "Logout successful"})
}

// Me handles GET /auth/me behind access-token verification. The account is
// re-resolved here so a record deleted after token issuance surfaces as
// NotFound with cookies cleared rather than a generic rejection.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok || session.Claims == nil {
		return apperrors.NewUnauthorized("Invalid authentication token. Please login again.")
	}

	user, err := h.sessions.CurrentUser(c.Context(), session.Claims.UserID)
	if err != nil {
		h.cookies.Clear(c)
		return err
	}

	return c.JSON(fiber.Map{"data": user.Public()})
}
