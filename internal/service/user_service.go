package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// UserService manages staff accounts.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// NewUserInput carries the fields an admin supplies when creating an account.
type NewUserInput struct {
	Name        string
	Email       *string
	PhoneNumber *string
	Role        domain.UserRole
	CreatedBy   *int64
}

// Create provisions a user with a generated temporary password. The plaintext
// is returned once to be handed to the new user out of band.
func (s *UserService) Create(ctx context.Context, input NewUserInput) (*domain.User, string, error) {
	if input.Email == nil && input.PhoneNumber == nil {
		return nil, "", apperrors.NewValidationError("At least one of email and phone number must be provided", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, "", apperrors.NewValidationError("Invalid user role", nil)
	}
	if input.Role != domain.RoleSuperAdmin && input.CreatedBy == nil {
		return nil, "", apperrors.NewValidationError("createdBy is required for non-super admin users", nil)
	}

	tempPassword := uuid.NewString()
	hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	user := &domain.User{
		Name:           input.Name,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		Role:           input.Role,
		PasswordHash:   hash,
		IsPasswordTemp: true,
		IsActive:       true,
		CreatedBy:      input.CreatedBy,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", apperrors.MapError(err)
	}
	return user, tempPassword, nil
}

// ChangePassword replaces the caller's password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("Current password is incorrect.")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	user.PasswordHash = hash
	user.IsPasswordTemp = false
	return apperrors.MapError(s.users.Update(ctx, user))
}

// SetActive toggles the account gate used by the verification chain.
func (s *UserService) SetActive(ctx context.Context, userID int64, active bool) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user.IsActive = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
