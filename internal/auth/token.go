package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/inventory-service/internal/config"
)

// TokenClass selects which secret and lifetime a token is bound to. A token
// issued for one class never verifies under the other.
type TokenClass string

const (
	ClassAccess  TokenClass = "access"
	ClassRefresh TokenClass = "refresh"
)

// Verification failure taxonomy. Callers branch on these to pick user-facing
// messages; Expired is deliberately distinguishable so clients know a refresh
// may still succeed.
var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrBadSignature   = errors.New("token signature invalid")
)

// Claims is the fixed-shape session token payload. Timestamps are carried in
// RegisteredClaims at integer-second precision.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Codec signs and verifies session tokens for both classes. It is immutable
// after construction and safe for concurrent use.
type Codec struct {
	secrets map[TokenClass][]byte
	ttls    map[TokenClass]time.Duration
	now     func() time.Time
}

// NewCodec builds a codec from the authentication configuration.
func NewCodec(cfg config.AuthConfig) *Codec {
	return &Codec{
		secrets: map[TokenClass][]byte{
			ClassAccess:  []byte(cfg.AccessSecret),
			ClassRefresh: []byte(cfg.RefreshSecret),
		},
		ttls: map[TokenClass]time.Duration{
			ClassAccess:  cfg.AccessTokenTTL,
			ClassRefresh: cfg.RefreshTokenTTL,
		},
		now: time.Now,
	}
}

// TTL returns the configured lifetime for a token class.
func (c *Codec) TTL(class TokenClass) time.Duration {
	return c.ttls[class]
}

// Issue signs a token of the given class for the user.
func (c *Codec) Issue(userID int64, class TokenClass) (string, error) {
	return c.IssueAt(userID, class, c.now())
}

// IssueAt signs a token with an explicit issue time. Output is deterministic
// for fixed inputs and secret; timestamps are truncated to whole seconds.
func (c *Codec) IssueAt(userID int64, class TokenClass, now time.Time) (string, error) {
	issuedAt := now.Truncate(time.Second)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttls[class])),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secrets[class])
}

// IssuePair mints a fresh access+refresh token pair for the user.
func (c *Codec) IssuePair(userID int64) (TokenPair, error) {
	access, err := c.Issue(userID, ClassAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := c.Issue(userID, ClassRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify validates a token against the class secret and returns its claims.
// Failures map onto the package error taxonomy.
func (c *Codec) Verify(tokenStr string, class TokenClass) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrBadSignature
		}
		return c.secrets[class], nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.UserID <= 0 || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrTokenMalformed
	}
	// Re-check expiry against our own clock; the library check above must
	// agree with this one.
	if !c.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
