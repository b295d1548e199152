package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/config"
)

// Cookie names for the two token classes.
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// CookieWriter moves token pairs in and out of HTTP-only cookies. Cookie
// max-age always equals the TTL of the token it carries, so a cookie can
// never outlive its token.
type CookieWriter struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

// NewCookieWriter builds a writer. Secure cookies are enforced in production
// and relaxed in development so plain-HTTP testing works.
func NewCookieWriter(cfg config.AuthConfig, production bool) *CookieWriter {
	return &CookieWriter{
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		secure:     production,
	}
}

// Attach writes both session cookies onto the response.
func (w *CookieWriter) Attach(c *fiber.Ctx, pair TokenPair) {
	c.Cookie(w.cookie(AccessCookieName, pair.AccessToken, w.accessTTL))
	c.Cookie(w.cookie(RefreshCookieName, pair.RefreshToken, w.refreshTTL))
}

// Clear expires both session cookies. The attribute flags must match the ones
// used by Attach or some clients will not drop the cookie. Safe to call when
// no cookies are present.
func (w *CookieWriter) Clear(c *fiber.Ctx) {
	c.Cookie(w.expired(AccessCookieName))
	c.Cookie(w.expired(RefreshCookieName))
}

func (w *CookieWriter) cookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func (w *CookieWriter) expired(name string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
