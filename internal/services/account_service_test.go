package services

import (
	"context"
	"distance-service/internal/domain"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountService(users *memUsers) *AccountService {
	svc := NewAccountService(users, staticIssuer{})
	// Skip bcrypt cost in unit tests.
	svc.hash = func(p string) (string, error) { return "hashed:" + p, nil }
	svc.check = func(p, h string) bool { return h == "hashed:"+p }
	svc.newID = func() string { return "u-1" }
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	svc := newTestAccountService(users)
	ctx := context.Background()

	u, err := svc.Register(ctx, " ada ", "Ada@Example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "correct horse", u.PasswordHash)

	token, got, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "token-for-u-1", token)
	assert.Equal(t, u.ID, got.ID)

	me, err := svc.Me(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ada", me.Username)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAccountService(newMemUsers())
	ctx := context.Background()

	cases := []struct {
		name, username, email, password string
	}{
		{"short username", "ab", "a@example.com", "password1"},
		{"long username", strings.Repeat("x", 51), "a@example.com", "password1"},
		{"bad email", "ada", "not-an-email", "password1"},
		{"named email", "ada", "Ada <ada@example.com>", "password1"},
		{"short password", "ada", "a@example.com", "short"},
		{"password over bcrypt limit", "ada", "a@example.com", strings.Repeat("p", 80)},
		{"multibyte password over bcrypt limit", "ada", "a@example.com", strings.Repeat("é", 37)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAccountService(newMemUsers())
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "ada@example.com", "password1")
	require.NoError(t, err)

	svc.newID = func() string { return "u-2" }
	_, err = svc.Register(ctx, "ada2", "ADA@example.com", "password2")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAccountService(newMemUsers())
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "ada@example.com", "password1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginRepositoryFailure(t *testing.T) {
	boom := errors.New("db down")
	users := newMemUsers()
	users.getErr = boom
	svc := newTestAccountService(users)

	_, _, err := svc.Login(context.Background(), "ada@example.com", "password1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginTokenFailure(t *testing.T) {
	users := newMemUsers()
	svc := newTestAccountService(users)
	ctx := context.Background()
	_, err := svc.Register(ctx, "ada", "ada@example.com", "password1")
	require.NoError(t, err)

	svc.Tokens = staticIssuer{err: errors.New("signing failed")}
	_, _, err = svc.Login(ctx, "ada@example.com", "password1")
	assert.Error(t, err)
}

func TestMeUnknownUser(t *testing.T) {
	svc := newTestAccountService(newMemUsers())

	_, err := svc.Me(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.Me(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterLongPasswordWithRealHash(t *testing.T) {
	users := newMemUsers()
	svc := NewAccountService(users, staticIssuer{})

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", strings.Repeat("p", 80))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, users.byID)

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", strings.Repeat("p", 72))
	require.NoError(t, err)
	assert.NotEmpty(t, u.PasswordHash)
}
