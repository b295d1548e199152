package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/domain"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

type fakeUserRepo struct {
	users     map[int64]*domain.User
	lastLogin map[int64]time.Time
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:     make(map[int64]*domain.User),
		lastLogin: make(map[int64]time.Time),
	}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = int64(len(f.users) + 1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, user := range f.users {
		if (user.Email != nil && *user.Email == identifier) ||
			(user.PhoneNumber != nil && *user.PhoneNumber == identifier) {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) SetLastLogin(_ context.Context, id int64, at time.Time) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	f.lastLogin[id] = at
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func testAuthService(t *testing.T, repo *fakeUserRepo) *AuthService {
	t.Helper()
	codec := auth.NewCodec(config.AuthConfig{
		AccessSecret:    "access-secret-for-tests",
		RefreshSecret:   "refresh-secret-for-tests",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: 3 * time.Minute,
	})
	return NewAuthService(repo, codec, nil, zap.NewNop())
}

func domainStatus(t *testing.T, err error) int {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr.HTTPStatus
}

func TestLoginSuccess(t *testing.T) {
	email := "agent@example.com"
	repo := newFakeUserRepo(&domain.User{
		ID:           1,
		Email:        &email,
		PasswordHash: mustHash(t, "correct-horse-battery"),
		IsActive:     true,
	})
	svc := testAuthService(t, repo)

	user, pair, err := svc.Login(context.Background(), email, "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *user.LastLoginAt, 2*time.Second)
	assert.Equal(t, *user.LastLoginAt, repo.lastLogin[1])
}

func TestLoginByPhoneNumber(t *testing.T) {
	phone := "0612345678"
	repo := newFakeUserRepo(&domain.User{
		ID:           4,
		PhoneNumber:  &phone,
		PasswordHash: mustHash(t, "delivery-pass-123"),
		IsActive:     true,
	})
	svc := testAuthService(t, repo)

	user, _, err := svc.Login(context.Background(), phone, "delivery-pass-123")
	require.NoError(t, err)
	assert.Equal(t, int64(4), user.ID)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	email := "agent@example.com"
	repo := newFakeUserRepo(&domain.User{
		ID:           1,
		Email:        &email,
		PasswordHash: mustHash(t, "correct-horse-battery"),
		IsActive:     true,
	})
	svc := testAuthService(t, repo)

	_, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "whatever-password")
	require.Error(t, unknownErr)
	_, _, badPassErr := svc.Login(context.Background(), email, "wrong-password")
	require.Error(t, badPassErr)

	// Identical status and message for unknown identifier and bad password,
	// so the endpoint leaks nothing about which accounts exist.
	unknown := apperrors.ToDomainError(unknownErr)
	badPass := apperrors.ToDomainError(badPassErr)
	assert.Equal(t, unknown.HTTPStatus, badPass.HTTPStatus)
	assert.Equal(t, unknown.Message, badPass.Message)
	assert.Equal(t, 401, unknown.HTTPStatus)
}

func TestLoginInactiveUserForbidden(t *testing.T) {
	email := "retired@example.com"
	repo := newFakeUserRepo(&domain.User{
		ID:           2,
		Email:        &email,
		PasswordHash: mustHash(t, "still-remembers-it"),
		IsActive:     false,
	})
	svc := testAuthService(t, repo)

	_, _, err := svc.Login(context.Background(), email, "still-remembers-it")
	require.Error(t, err)
	assert.Equal(t, 403, domainStatus(t, err))

	// Status is only disclosed after the password verified.
	_, _, err = svc.Login(context.Background(), email, "wrong-password")
	assert.Equal(t, 401, domainStatus(t, err))
}

func TestRotateIssuesFreshPair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testAuthService(t, repo)

	first, err := svc.Rotate(context.Background(), 1)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	second, err := svc.Rotate(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
}

func TestCurrentUser(t *testing.T) {
	email := "agent@example.com"
	repo := newFakeUserRepo(
		&domain.User{ID: 1, Email: &email, IsActive: true},
		&domain.User{ID: 2, IsActive: false},
	)
	svc := testAuthService(t, repo)

	t.Run("active user resolves", func(t *testing.T) {
		user, err := svc.CurrentUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("vanished user maps to not found", func(t *testing.T) {
		_, err := svc.CurrentUser(context.Background(), 999)
		require.Error(t, err)
		assert.Equal(t, 404, domainStatus(t, err))
	})

	t.Run("deactivated user maps to forbidden", func(t *testing.T) {
		_, err := svc.CurrentUser(context.Background(), 2)
		require.Error(t, err)
		assert.Equal(t, 403, domainStatus(t, err))
	})
}
