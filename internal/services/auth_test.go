package services

import (
	"context"
	"testing"
	"time"

	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/pkg/config"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secreto-seguro"

func newAuthFixture(t *testing.T) (AuthServiceInterface, *mockCacheRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := &mockUserRepo{users: map[string]entities.User{
		"ana@mimp.gob.pe": {ID: 1, Email: "ana@mimp.gob.pe", Nombre: "Ana", PasswordHash: string(hash)},
	}}
	cacheRepo := newMockCacheRepo()
	jwtService := service.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute}

	return NewAuthService(userRepo, cacheRepo, jwtService, cfg, zap.NewNop()), cacheRepo
}

func TestLoginSuccess(t *testing.T) {
	svc, cacheRepo := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.User.Nombre)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, int64(3600), resp.Tokens.ExpiresIn)
	assert.Empty(t, cacheRepo.values["login_attempts:ana@mimp.gob.pe"])
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, errPassword := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: "incorrecta123"})
	_, errEmail := svc.Login(context.Background(), dto.LoginDTO{Email: "nadie@mimp.gob.pe", Password: testPassword})

	assert.ErrorIs(t, errPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errEmail, apperrors.ErrInvalidCredentials)
}

func TestLoginLockoutAfterMaxAttempts(t *testing.T) {
	svc, _ := newAuthFixture(t)
	payload := dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: "incorrecta123"}

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// Even the right password is rejected while locked.
	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: testPassword})
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestLoginSuccessResetsAttemptCounter(t *testing.T) {
	svc, cacheRepo := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: "incorrecta123"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	require.NotEmpty(t, cacheRepo.values["login_attempts:ana@mimp.gob.pe"])

	_, err = svc.Login(context.Background(), dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: testPassword})
	require.NoError(t, err)
	assert.Empty(t, cacheRepo.values["login_attempts:ana@mimp.gob.pe"])
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: testPassword})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), dto.RefreshDTO{RefreshToken: resp.Tokens.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: testPassword})
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), dto.RefreshDTO{RefreshToken: resp.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.CurrentUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ana@mimp.gob.pe", user.Email)

	_, err = svc.CurrentUser(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ana@mimp.gob.pe", Password: testPassword})
	require.NoError(t, err)

	payload := dto.RefreshDTO{RefreshToken: resp.Tokens.RefreshToken}
	_, err = svc.Refresh(context.Background(), payload)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), payload))

	_, err = svc.Refresh(context.Background(), payload)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogoutIgnoresGarbageToken(t *testing.T) {
	svc, cacheRepo := newAuthFixture(t)

	require.NoError(t, svc.Logout(context.Background(), dto.RefreshDTO{RefreshToken: "no-es-un-token"}))
	assert.Empty(t, cacheRepo.values)
}
