package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

type memoryUserRepo struct {
	users map[int64]*domain.User
}

func (m *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserRepo) Delete(_ context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (m *memoryUserRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, user := range m.users {
		if (user.Email != nil && *user.Email == identifier) ||
			(user.PhoneNumber != nil && *user.PhoneNumber == identifier) {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) { return nil, nil }
func (m *memoryUserRepo) SetLastLogin(_ context.Context, id int64, at time.Time) error {
	if user, ok := m.users[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

type authFixture struct {
	app   *fiber.App
	codec *auth.Codec
	repo  *memoryUserRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := config.AuthConfig{
		AccessSecret:    "access-secret-for-tests",
		RefreshSecret:   "refresh-secret-for-tests",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: 3 * time.Minute,
	}

	email := "agent@example.com"
	hash, err := auth.HashPassword("correct-horse-battery", bcrypt.MinCost)
	require.NoError(t, err)
	repo := &memoryUserRepo{users: map[int64]*domain.User{
		1: {
			ID:           1,
			Name:         "Active Agent",
			Email:        &email,
			Role:         domain.RoleSalesAgent,
			PasswordHash: hash,
			IsActive:     true,
		},
	}}

	codec := auth.NewCodec(cfg)
	cookies := auth.NewCookieWriter(cfg, false)
	verifier := auth.NewVerifier(codec, repo, cookies)
	sessions := service.NewAuthService(repo, codec, nil, zap.NewNop())
	handler := handlers.NewAuthHandler(sessions, cookies)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"message": domainErr.Message})
		},
	})
	group := app.Group("/auth")
	group.Post("/login", handler.Login)
	group.Post("/logout", handler.Logout)
	group.Post("/refresh", verifier.RefreshChain(), handler.Refresh)
	group.Get("/me", auth.Chain(verifier.VerifyCookie(auth.ClassAccess)), handler.Me)

	return &authFixture{app: app, codec: codec, repo: repo}
}

func (fx *authFixture) do(t *testing.T, method, path, body string, cookies []*http.Cookie) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := fx.app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(raw)
}

func (fx *authFixture) login(t *testing.T) (*http.Response, string) {
	t.Helper()
	return fx.do(t, http.MethodPost, "/auth/login",
		`{"identifier":"agent@example.com","password":"correct-horse-battery"}`, nil)
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestLoginSetsSessionCookies(t *testing.T) {
	fx := newAuthFixture(t)

	resp, body := fx.login(t)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Login successful"}`, body)

	access := cookieByName(resp, auth.AccessCookieName)
	require.NotNil(t, access)
	assert.Equal(t, 60, access.MaxAge)
	assert.True(t, access.HttpOnly)

	refresh := cookieByName(resp, auth.RefreshCookieName)
	require.NotNil(t, refresh)
	assert.Equal(t, 180, refresh.MaxAge)
	assert.True(t, refresh.HttpOnly)

	// Token material stays in cookies, never in the body.
	assert.NotContains(t, body, access.Value)
	assert.NotContains(t, body, refresh.Value)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	fx := newAuthFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"identifier":"agent@example.com","password":"wrong-password"}`},
		{"unknown identifier", `{"identifier":"nobody@example.com","password":"correct-horse-battery"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := fx.do(t, http.MethodPost, "/auth/login", tt.body, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, body, "Invalid email/phone or password. Please check your credentials.")
			assert.Empty(t, resp.Cookies())
		})
	}
}

func TestLoginValidation(t *testing.T) {
	fx := newAuthFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing password", `{"identifier":"agent@example.com"}`},
		{"short password", `{"identifier":"agent@example.com","password":"short"}`},
		{"bad identifier shape", `{"identifier":"not-an-email-or-phone","password":"correct-horse-battery"}`},
		{"not json", `identifier=agent`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := fx.do(t, http.MethodPost, "/auth/login", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	fx := newAuthFixture(t)

	loginResp, _ := fx.login(t)
	oldRefresh := cookieByName(loginResp, auth.RefreshCookieName)
	require.NotNil(t, oldRefresh)

	// Issue timestamps carry second precision, so cross a second boundary
	// to observe distinct tokens.
	time.Sleep(1100 * time.Millisecond)

	resp, body := fx.do(t, http.MethodPost, "/auth/refresh", "", []*http.Cookie{oldRefresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Token refreshed successfully"}`, body)

	newAccess := cookieByName(resp, auth.AccessCookieName)
	newRefresh := cookieByName(resp, auth.RefreshCookieName)
	require.NotNil(t, newAccess)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)
	assert.Equal(t, 60, newAccess.MaxAge)
	assert.Equal(t, 180, newRefresh.MaxAge)
}

func TestRefreshWithoutRevocation(t *testing.T) {
	fx := newAuthFixture(t)

	loginResp, _ := fx.login(t)
	oldRefresh := cookieByName(loginResp, auth.RefreshCookieName)
	require.NotNil(t, oldRefresh)

	resp, _ := fx.do(t, http.MethodPost, "/auth/refresh", "", []*http.Cookie{oldRefresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// No server-side revocation: a superseded refresh token keeps working
	// until its own expiry.
	resp, _ = fx.do(t, http.MethodPost, "/auth/refresh", "", []*http.Cookie{oldRefresh})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	fx := newAuthFixture(t)

	loginResp, _ := fx.login(t)
	access := cookieByName(loginResp, auth.AccessCookieName)
	require.NotNil(t, access)

	// An access token in the refresh cookie slot fails signature check.
	resp, body := fx.do(t, http.MethodPost, "/auth/refresh", "",
		[]*http.Cookie{{Name: auth.RefreshCookieName, Value: access.Value}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid or expired refresh token. Please login again.")
}

func TestLogoutClearsCookies(t *testing.T) {
	fx := newAuthFixture(t)

	loginResp, _ := fx.login(t)
	access := cookieByName(loginResp, auth.AccessCookieName)
	refresh := cookieByName(loginResp, auth.RefreshCookieName)

	resp, body := fx.do(t, http.MethodPost, "/auth/logout", "", []*http.Cookie{access, refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Logout successful"}`, body)

	for _, name := range []string{auth.AccessCookieName, auth.RefreshCookieName} {
		ck := cookieByName(resp, name)
		require.NotNil(t, ck, name)
		assert.Empty(t, ck.Value)
		assert.True(t, ck.Expires.Before(time.Now()))
	}
}

func TestLogoutWithoutSessionStillSucceeds(t *testing.T) {
	fx := newAuthFixture(t)

	resp, body := fx.do(t, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Logout successful"}`, body)
}

func TestMeReturnsPublicProjection(t *testing.T) {
	fx := newAuthFixture(t)

	loginResp, _ := fx.login(t)
	access := cookieByName(loginResp, auth.AccessCookieName)

	resp, body := fx.do(t, http.MethodGet, "/auth/me", "", []*http.Cookie{access})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.EqualValues(t, 1, payload.Data["id"])
	assert.Equal(t, "agent@example.com", payload.Data["email"])
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, body, "password_hash")
}

func TestMeWithoutTokenRejected(t *testing.T) {
	fx := newAuthFixture(t)

	resp, body := fx.do(t, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Authentication token is missing. Please login to access this resource.")
}

func TestMeVanishedUserClearsCookies(t *testing.T) {
	fx := newAuthFixture(t)

	// A signed token naming a user that no longer exists.
	token, err := fx.codec.Issue(999, auth.ClassAccess)
	require.NoError(t, err)

	resp, body := fx.do(t, http.MethodGet, "/auth/me", "",
		[]*http.Cookie{{Name: auth.AccessCookieName, Value: token}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "User account no longer exists. Please contact support if this is unexpected.")

	for _, name := range []string{auth.AccessCookieName, auth.RefreshCookieName} {
		ck := cookieByName(resp, name)
		require.NotNil(t, ck, name)
		assert.Empty(t, ck.Value)
	}
}

func TestMeDeactivatedUserForbidden(t *testing.T) {
	fx := newAuthFixture(t)
	fx.repo.users[1].IsActive = false

	token, err := fx.codec.Issue(1, auth.ClassAccess)
	require.NoError(t, err)

	resp, _ := fx.do(t, http.MethodGet, "/auth/me", "",
		[]*http.Cookie{{Name: auth.AccessCookieName, Value: token}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
