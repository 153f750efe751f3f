package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shopnet/marketplace/internal/transport"
)

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Register(ctx, transport.RegisterRequest{Password: "secret123"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = e.users.Register(ctx, transport.RegisterRequest{Email: "a@example.com", Password: "1234"})
	require.ErrorIs(t, err, ErrValidation)

	user, err := e.users.Register(ctx, transport.RegisterRequest{Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, user.UID)
	require.True(t, user.IsActive)

	_, err = e.users.Register(ctx, transport.RegisterRequest{Email: "a@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.user(t, "a@example.com")

	user, pair, err := e.users.Login(ctx, transport.LoginRequest{Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "a@example.com", user.Email)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	_, _, err = e.users.Login(ctx, transport.LoginRequest{Email: "a@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = e.users.Login(ctx, transport.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrUnauthorized)
}

// Two logins landing in the same wall-clock second must both succeed
// and persist distinct refresh tokens.
func TestRepeatedLoginsIssueDistinctTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.user(t, "a@example.com")

	creds := transport.LoginRequest{Email: "a@example.com", Password: "secret123"}
	_, first, err := e.users.Login(ctx, creds)
	require.NoError(t, err)
	_, second, err := e.users.Login(ctx, creds)
	require.NoError(t, err)
	require.NotEqual(t, first.Refresh, second.Refresh)

	// both tokens are live until rotated
	_, err = e.users.Refresh(ctx, first.Refresh)
	require.NoError(t, err)
	_, err = e.users.Refresh(ctx, second.Refresh)
	require.NoError(t, err)
}

func TestRefreshRotation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.user(t, "a@example.com")

	_, pair, err := e.users.Login(ctx, transport.LoginRequest{Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	next, err := e.users.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	require.NotEmpty(t, next.Access)
	require.NotEqual(t, pair.Refresh, next.Refresh)

	// the presented token was revoked during rotation
	_, err = e.users.Refresh(ctx, pair.Refresh)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = e.users.Refresh(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateMe(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.user(t, "a@example.com")
	cat := e.category(t, "electronics")

	name := "new name"
	password := "evenmoresecret"
	user, err := e.users.UpdateMe(ctx, uid, transport.UpdateUserRequest{
		Name:     &name,
		Password: &password,
		Category: &cat,
	})
	require.NoError(t, err)
	require.Equal(t, "new name", user.Name)
	require.Equal(t, cat, *user.CategoryUID)

	_, _, err = e.users.Login(ctx, transport.LoginRequest{Email: "a@example.com", Password: password})
	require.NoError(t, err)

	short := "1234"
	_, err = e.users.UpdateMe(ctx, uid, transport.UpdateUserRequest{Password: &short})
	require.ErrorIs(t, err, ErrValidation)

	unknown := uuid.New()
	_, err = e.users.UpdateMe(ctx, uid, transport.UpdateUserRequest{Category: &unknown})
	require.ErrorIs(t, err, ErrValidation)
}
