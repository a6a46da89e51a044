package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumbrapp/lumbr-server/internal/auth"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

func newTestAuthService(t *testing.T, s store.Store) *AuthService {
	t.Helper()
	tokens, err := auth.NewTokenService(bytes.Repeat([]byte{0x42}, 32), 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)
	sessions := NewSessionService(s, tokens, testLogger())
	return NewAuthService(s, tokens, sessions, testLogger())
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "Alice@Example.com",
		Username: "Alice",
		Name:     "Alice",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// Login with a differently cased email.
	login, err := svc.Login(ctx, LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	claims, err := svc.VerifyAccessToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	req := RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Name:     "Alice",
		Password: "correct-horse-battery",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrConflict))
}

func TestRegisterInvalidUsername(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Username: "al ice!",
		Name:     "Alice",
		Password: "correct-horse-battery",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Name:     "Alice",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))

	// Unknown email gets the same error as a wrong password.
	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestLoginSuspended(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Name:     "Alice",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, s.SuspendUser(ctx, resp.User.ID, "", "spam", time.Now().UTC().AddDate(0, 0, 3)))

	_, err = svc.Login(ctx, LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrSuspended))
}

func TestRefreshRotatesToken(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Name:     "Alice",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, refreshed.SessionID)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is dead after rotation.
	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrTokenExpired))
}

func TestLogoutIdempotent(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Name:     "Alice",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	require.Error(t, err)
}
