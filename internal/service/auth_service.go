package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// Unknown identifier and wrong password share one message so the endpoint
// cannot be used to enumerate accounts.
const genericLoginMessage = "Invalid email/phone or password. Please check your credentials."

// AuthService orchestrates the session lifecycle: credential verification at
// login, token pair rotation on refresh, and current-user resolution.
type AuthService struct {
	users    repository.UserRepository
	codec    *auth.Codec
	throttle *LoginThrottle
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, codec *auth.Codec, throttle *LoginThrottle, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, throttle: throttle, logger: logger}
}

// Login verifies an identifier/password pair and mints a fresh token pair.
// The lastLoginAt timestamp is updated on success.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, auth.TokenPair, error) {
	if !s.throttle.Allow(ctx, identifier) {
		return nil, auth.TokenPair{}, apperrors.NewTooManyRequests("Too many login attempts. Please try again later.")
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.TokenPair{}, apperrors.NewUnauthorized(genericLoginMessage)
		}
		return nil, auth.TokenPair{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: bad password", zap.Int64("user_id", user.ID))
		return nil, auth.TokenPair{}, apperrors.NewUnauthorized(genericLoginMessage)
	}

	if !user.IsActive {
		return nil, auth.TokenPair{}, apperrors.NewForbidden("Your account has been deactivated. Please contact support for assistance.")
	}

	now := time.Now()
	if err := s.users.SetLastLogin(ctx, user.ID, now); err != nil {
		return nil, auth.TokenPair{}, apperrors.MapError(err)
	}
	user.LastLoginAt = &now

	pair, err := s.codec.IssuePair(user.ID)
	if err != nil {
		return nil, auth.TokenPair{}, apperrors.MapError(err)
	}

	s.throttle.Reset(ctx, identifier)
	s.logger.Info("login succeeded", zap.Int64("user_id", user.ID))
	return user, pair, nil
}

// Rotate mints a brand-new access+refresh pair for an already verified user.
// The previous refresh token is superseded, not revoked; it stays
// cryptographically valid until its own expiry.
func (s *AuthService) Rotate(ctx context.Context, userID int64) (auth.TokenPair, error) {
	pair, err := s.codec.IssuePair(userID)
	if err != nil {
		return auth.TokenPair{}, apperrors.MapError(err)
	}
	s.logger.Info("session rotated", zap.Int64("user_id", userID))
	return pair, nil
}

// CurrentUser resolves the account behind verified claims. A vanished record
// maps to NotFound and a deactivated one to Forbidden; the handler clears
// cookies in both cases.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User account no longer exists. Please contact support if this is unexpected.")
		}
		return nil, apperrors.MapError(err)
	}
	if !user.IsActive {
		return nil, apperrors.NewForbidden("Your account has been deactivated. Please contact support for assistance.")
	}
	return user, nil
}
