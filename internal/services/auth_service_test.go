package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentreats/sentreats-server/internal/config"
	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
	"github.com/sentreats/sentreats-server/internal/store/filestore"
)

func mustStore(t *testing.T) store.Store {
	t.Helper()
	st, err := filestore.Open(t.TempDir())
	require.NoError(t, err)
	return st
}

func testConfig(expiry time.Duration) *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: expiry,
	}
}

func newAuthService(t *testing.T, expiry time.Duration) *AuthService {
	t.Helper()
	st, err := filestore.Open(t.TempDir())
	require.NoError(t, err)
	return NewAuthService(st, testConfig(expiry))
}

func TestRegisterLoginScenario(t *testing.T) {
	svc := newAuthService(t, 24*time.Hour)

	user, token, err := svc.Register(&dto.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret1", user.Password, "password must be stored hashed")
	assert.Contains(t, models.AvatarColors, user.AvatarColor)

	loggedIn, _, err := svc.Login(&dto.LoginRequest{Identifier: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	byEmail, _, err := svc.Login(&dto.LoginRequest{Identifier: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, _, err = svc.Login(&dto.LoginRequest{Identifier: "alice", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&dto.LoginRequest{Identifier: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newAuthService(t, 24*time.Hour)

	_, _, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = svc.Register(&dto.RegisterRequest{Username: "alice", Email: "other@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, _, err = svc.Register(&dto.RegisterRequest{Username: "alice2", Email: "alice@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Neither rejection may have created a row.
	other, _, err := svc.Register(&dto.RegisterRequest{Username: "bob", Email: "bob@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, uint(2), other.ID)
}

func TestTokenLifecycle(t *testing.T) {
	svc := newAuthService(t, 24*time.Hour)

	user, token, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	// Valid while before expiry.
	subject, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	// A token whose expiry has passed is rejected; a negative expiry stands
	// in for waiting out the 24h window.
	expiredSvc := NewAuthService(mustStore(t), testConfig(-time.Hour))
	u2, expired, err := expiredSvc.Register(&dto.RegisterRequest{Username: "bob", Email: "bob@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotZero(t, u2.ID)
	_, err = expiredSvc.VerifyToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Tampered tokens are rejected.
	_, err = svc.VerifyToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with another secret is rejected.
	otherSvc := NewAuthService(mustStore(t), &config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	foreign, err := otherSvc.GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.VerifyToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCurrentUserUnknownID(t *testing.T) {
	svc := newAuthService(t, time.Hour)
	_, err := svc.CurrentUser(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
