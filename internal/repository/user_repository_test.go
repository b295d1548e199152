package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/inventory-service/internal/domain"
)

var userRows = []string{
	"id", "name", "email", "phone_number", "role", "password_hash",
	"is_password_temp", "is_active", "created_by", "last_login_at", "created_at", "updated_at",
}

func newUserMock(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserGetByIdentifier(t *testing.T) {
	mock, repo := newUserMock(t)

	email := "agent@example.com"
	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email=\$1 OR phone_number=\$1 LIMIT 1`).
		WithArgs(email).
		WillReturnRows(pgxmock.NewRows(userRows).AddRow(
			int64(1), "Active Agent", &email, (*string)(nil), domain.RoleSalesAgent, "hash",
			false, true, (*int64)(nil), (*time.Time)(nil), now, now,
		))

	user, err := repo.GetByIdentifier(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	require.NotNil(t, user.Email)
	assert.Equal(t, email, *user.Email)
	assert.Nil(t, user.PhoneNumber)
	assert.True(t, user.IsActive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByIdentifierNotFound(t *testing.T) {
	mock, repo := newUserMock(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email=\$1 OR phone_number=\$1 LIMIT 1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByIdentifier(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserSetLastLogin(t *testing.T) {
	mock, repo := newUserMock(t)

	at := time.Now()
	mock.ExpectExec(`UPDATE users SET last_login_at=\$1, updated_at=NOW\(\) WHERE id=\$2`).
		WithArgs(at, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SetLastLogin(context.Background(), 1, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateReturnsGeneratedFields(t *testing.T) {
	mock, repo := newUserMock(t)

	email := "fresh@example.com"
	now := time.Now()
	user := &domain.User{
		Name:           "Fresh Hire",
		Email:          &email,
		Role:           domain.RoleDeliveryStaff,
		PasswordHash:   "hash",
		IsPasswordTemp: true,
		IsActive:       true,
	}

	mock.ExpectQuery(`INSERT INTO users (.+) RETURNING id, created_at, updated_at`).
		WithArgs(user.Name, user.Email, user.PhoneNumber, user.Role, user.PasswordHash,
			user.IsPasswordTemp, user.IsActive, user.CreatedBy).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, now, user.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteMissingRow(t *testing.T) {
	mock, repo := newUserMock(t)

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserList(t *testing.T) {
	mock, repo := newUserMock(t)

	now := time.Now()
	email := "a@example.com"
	phone := "0612345678"
	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY id LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(userRows).
			AddRow(int64(1), "A", &email, (*string)(nil), domain.RoleAdmin, "h1",
				false, true, (*int64)(nil), (*time.Time)(nil), now, now).
			AddRow(int64(2), "B", (*string)(nil), &phone, domain.RoleSalesAgent, "h2",
				true, true, (*int64)(nil), (*time.Time)(nil), now, now))

	users, err := repo.List(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "A", users[0].Name)
	require.NotNil(t, users[1].PhoneNumber)
	assert.Equal(t, phone, *users[1].PhoneNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}
