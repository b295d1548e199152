package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

const sessionKey = "auth_session"

// Session is the per-request verification context. Guards fill it in as the
// chain advances: raw token first, decoded claims after signature
// verification, the loaded user after the repository lookup. It lives only in
// fiber locals for the duration of one request.
type Session struct {
	Token  string
	Claims *Claims
	User   *domain.User
}

// Guard is one step of a verification chain. Returning an error rejects the
// request; the error middleware converts it to a JSON response.
type Guard func(c *fiber.Ctx, s *Session) error

// Chain composes guards into a fiber handler. Guards run left to right and
// the first failure short-circuits; on success the session is attached to the
// request context for downstream handlers.
func Chain(guards ...Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := &Session{}
		for _, guard := range guards {
			if err := guard(c, session); err != nil {
				return err
			}
		}
		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// SessionFromContext retrieves the verified session placed by a chain.
func SessionFromContext(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*Session)
	return session, ok
}

// Verifier bundles the dependencies guards need: the token codec for
// signature checks, the user repository for account lookups, and the cookie
// writer for clearing cookies on rejections that name a dead session.
type Verifier struct {
	codec   *Codec
	users   repository.UserRepository
	cookies *CookieWriter
}

// NewVerifier constructs a verifier.
func NewVerifier(codec *Codec, users repository.UserRepository, cookies *CookieWriter) *Verifier {
	return &Verifier{codec: codec, users: users, cookies: cookies}
}

// AccessChain protects routes with the access-token cookie.
func (v *Verifier) AccessChain() fiber.Handler {
	return Chain(v.VerifyCookie(ClassAccess), v.LoadUser(), v.RequireActive())
}

// RefreshChain protects the token refresh route with the refresh-token cookie.
func (v *Verifier) RefreshChain() fiber.Handler {
	return Chain(v.VerifyCookie(ClassRefresh), v.LoadUser(), v.RequireActive())
}

// BearerChain protects routes for non-cookie clients via the Authorization
// header, using the access-class secret.
func (v *Verifier) BearerChain() fiber.Handler {
	return Chain(v.VerifyBearer(), v.LoadUser(), v.RequireActive())
}

// VerifyCookie extracts the class cookie and verifies signature and expiry.
// The expired case gets its own message so clients can decide to refresh. A
// missing token clears nothing; a failed refresh token clears both cookies.
func (v *Verifier) VerifyCookie(class TokenClass) Guard {
	cookieName := AccessCookieName
	if class == ClassRefresh {
		cookieName = RefreshCookieName
	}

	return func(c *fiber.Ctx, s *Session) error {
		s.Token = c.Cookies(cookieName)

		claims, err := v.codec.Verify(s.Token, class)
		if err != nil {
			if class == ClassRefresh {
				if !errors.Is(err, ErrTokenMissing) {
					v.cookies.Clear(c)
				}
				return apperrors.NewUnauthorized("Invalid or expired refresh token. Please login again.")
			}
			switch {
			case errors.Is(err, ErrTokenMissing):
				return apperrors.NewUnauthorized("Authentication token is missing. Please login to access this resource.")
			case errors.Is(err, ErrTokenExpired):
				return apperrors.NewUnauthorized("Authentication token has expired. Please login again.")
			default:
				return apperrors.NewUnauthorized("Invalid authentication token. Please login again.")
			}
		}

		s.Claims = claims
		return nil
	}
}

// VerifyBearer verifies an access-class token from the Authorization header.
func (v *Verifier) VerifyBearer() Guard {
	return func(c *fiber.Ctx, s *Session) error {
		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperrors.NewUnauthorized("Authorization header is missing or invalid. Please provide a valid bearer token.")
		}
		s.Token = parts[1]

		claims, err := v.codec.Verify(s.Token, ClassAccess)
		if err != nil {
			return apperrors.NewUnauthorized("Invalid or expired authorization token.")
		}

		s.Claims = claims
		return nil
	}
}

// LoadUser resolves the account named by the verified claims. A token naming
// a deleted user is not retryable, so cookies are cleared alongside the
// rejection.
func (v *Verifier) LoadUser() Guard {
	return func(c *fiber.Ctx, s *Session) error {
		user, err := v.users.GetByID(c.Context(), s.Claims.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				v.cookies.Clear(c)
				return apperrors.NewUnauthorized("User account not found. Please login again.")
			}
			return apperrors.MapError(err)
		}
		s.User = user
		return nil
	}
}

// RequireActive rejects deactivated accounts. Cookies are cleared to stop
// repeated attempts with the same token.
func (v *Verifier) RequireActive() Guard {
	return func(c *fiber.Ctx, s *Session) error {
		if !s.User.IsActive {
			v.cookies.Clear(c)
			return apperrors.NewForbidden("Your account has been deactivated. Please contact support for assistance.")
		}
		return nil
	}
}
