package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/coach-platform/internal/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	store := newTestStore()
	authService := NewAuthService(store.Users, "test-secret", time.Hour)
	ctx := context.Background()

	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 12)

	user, err := authService.Register(ctx, "Jane Coach", "  "+email+" ", password, domain.RoleCoach)
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, domain.RoleCoach, user.Role)

	_, err = authService.Register(ctx, "Someone Else", email, password, domain.RoleAthlete)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	token, loggedIn, err := authService.Login(ctx, email, password)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	claims, err := authService.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleCoach, claims.Role)

	fetched, err := authService.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, email, fetched.Email)
	assert.Empty(t, fetched.PasswordHash)
}

func TestAuthService_LoginFailuresLookTheSame(t *testing.T) {
	store := newTestStore()
	authService := NewAuthService(store.Users, "test-secret", time.Hour)
	ctx := context.Background()

	email := gofakeit.Email()
	_, err := authService.Register(ctx, "Athlete", email, "correct-horse", domain.RoleAthlete)
	require.NoError(t, err)

	_, _, err = authService.Login(ctx, email, "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = authService.Login(ctx, gofakeit.Email(), "correct-horse")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = authService.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	authService := NewAuthService(newTestStore().Users, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := authService.Register(ctx, "", gofakeit.Email(), "password", domain.RoleCoach)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = authService.Register(ctx, "Name", "not-an-email", "password", domain.RoleCoach)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = authService.Register(ctx, "Name", gofakeit.Email(), "password", domain.Role("admin"))
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAuthService_ParseToken(t *testing.T) {
	store := newTestStore()
	issuer := NewAuthService(store.Users, "secret-a", time.Hour)
	other := NewAuthService(store.Users, "secret-b", time.Hour)
	ctx := context.Background()

	email := gofakeit.Email()
	_, err := issuer.Register(ctx, "Coach", email, "password1", domain.RoleCoach)
	require.NoError(t, err)
	token, _, err := issuer.Login(ctx, email, "password1")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := issuer.(*authService)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	oldToken, _, err := expired.Login(ctx, email, "password1")
	require.NoError(t, err)
	_, err = issuer.ParseToken(oldToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
